// meridian is the command line companion to the gateway: log in and out of
// the Meridian Cloud API, inspect the dashboard, and bulk-import broker
// exports.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mwhite-io/meridian/internal/app"
	"github.com/mwhite-io/meridian/internal/common"
	"github.com/mwhite-io/meridian/internal/interfaces"
	"github.com/mwhite-io/meridian/internal/models"
)

const usage = `Usage: meridian <command> [flags]

Commands:
  login      Log in to the Meridian Cloud API
  logout     Log out and clear the stored session
  status     Show the logged-in user
  summary    Show the dashboard snapshot
  briefing   Show the market briefing
  import     Import transactions from a CSV or PDF broker export
  version    Show version information

Run 'meridian <command> -h' for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	command := os.Args[1]
	args := os.Args[2:]

	if command == "version" {
		common.LoadVersionFromFile()
		fmt.Println(common.GetFullVersion())
		return
	}

	a, err := app.NewApp(os.Getenv("MERIDIAN_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch command {
	case "login":
		err = runLogin(ctx, a, args)
	case "logout":
		err = runLogout(ctx, a)
	case "status":
		err = runStatus(ctx, a)
	case "summary":
		err = runSummary(ctx, a, args)
	case "briefing":
		err = runBriefing(ctx, a)
	case "import":
		err = runImport(ctx, a, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n%s", command, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runLogin(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted if omitted)")
	fs.Parse(args)

	if *email == "" {
		return fmt.Errorf("-email is required")
	}
	if *password == "" {
		fmt.Print("Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		*password = strings.TrimSpace(line)
	}

	sess, err := a.Cloud.Login(ctx, models.Credentials{Email: *email, Password: *password})
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", sess.User.Name, sess.User.Email)
	return nil
}

func runLogout(ctx context.Context, a *app.App) error {
	if err := a.Cloud.Logout(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: backend logout failed (%v), local session cleared\n", err)
		return nil
	}
	fmt.Println("Logged out")
	return nil
}

func runStatus(ctx context.Context, a *app.App) error {
	user, err := a.Cloud.CurrentUser(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Email)
	if user.BaseCurrency != "" {
		fmt.Printf("Base currency: %s\n", user.BaseCurrency)
	}
	return nil
}

func runSummary(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	refresh := fs.Bool("refresh", false, "bypass the snapshot cache")
	fs.Parse(args)

	snap, err := a.Dashboard.Snapshot(ctx, *refresh)
	if err != nil {
		return err
	}

	fmt.Printf("Portfolios (%d):\n", len(snap.Portfolios))
	for _, p := range snap.Portfolios {
		fmt.Printf("  %-12s %s\n", p.ID, p.Name)
	}

	if snap.Summary != nil {
		fmt.Printf("\nTotal value:  $%.2f\n", snap.Summary.TotalValue)
		fmt.Printf("Total cost:   $%.2f\n", snap.Summary.TotalCost)
		fmt.Printf("Total gain:   %+.2f%%\n", snap.Summary.TotalGainPct)
	}

	if len(snap.Movers) > 0 {
		fmt.Println("\nMovers:")
		for _, m := range snap.Movers {
			fmt.Printf("  %-8s %+.2f%%\n", m.Symbol, m.ChangePct)
		}
	}

	return nil
}

func runBriefing(ctx context.Context, a *app.App) error {
	briefing, err := a.Insights.Briefing(ctx)
	if err != nil {
		return err
	}

	fmt.Println(briefing.Text)
	return nil
}

func runImport(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	portfolioID := fs.String("portfolio", "", "target portfolio id")
	file := fs.String("file", "", "path to a .csv or .pdf broker export")
	fs.Parse(args)

	if *portfolioID == "" {
		return fmt.Errorf("-portfolio is required")
	}
	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	var result *interfaces.ImportResult
	switch {
	case strings.HasSuffix(strings.ToLower(*file), ".csv"):
		data, err := os.ReadFile(*file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", *file, err)
		}
		if result, err = a.Importer.ImportCSV(ctx, *portfolioID, data); err != nil {
			return err
		}
	case strings.HasSuffix(strings.ToLower(*file), ".pdf"):
		var err error
		if result, err = a.Importer.ImportPDF(ctx, *portfolioID, *file); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported file type: %s (want .csv or .pdf)", *file)
	}

	fmt.Printf("Imported %d transactions, skipped %d\n", result.Imported, result.Skipped)
	for _, e := range result.Errors {
		fmt.Printf("  skipped: %s\n", e)
	}
	return nil
}
