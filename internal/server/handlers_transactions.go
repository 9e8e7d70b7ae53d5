package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/mwhite-io/meridian/internal/models"
)

// --- Transaction handlers ---

const maxImportSize = 10 << 20 // 10MB

// handleTransactions handles /api/portfolios/{id}/transactions.
// GET lists with optional symbol/type/from/to/limit filters, POST records
// a new transaction.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request, portfolioID string) {
	switch r.Method {
	case http.MethodGet:
		s.handleTransactionList(w, r, portfolioID)
	case http.MethodPost:
		s.handleTransactionCreate(w, r, portfolioID)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request, portfolioID string) {
	q := r.URL.Query()
	filter := models.TransactionFilter{
		Symbol: q.Get("symbol"),
		Type:   q.Get("type"),
		From:   q.Get("from"),
		To:     q.Get("to"),
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			WriteError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		filter.Limit = n
	}

	transactions, err := s.app.Cloud.ListTransactions(r.Context(), portfolioID, filter)
	if err != nil {
		WriteClientError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, transactions)
}

func (s *Server) handleTransactionCreate(w http.ResponseWriter, r *http.Request, portfolioID string) {
	var input models.TransactionInput
	if !DecodeJSON(w, r, &input) {
		return
	}

	if err := input.Validate(); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := s.app.Cloud.CreateTransaction(r.Context(), portfolioID, input)
	if err != nil {
		WriteClientError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, tx)
}

// handleTransactionDelete handles DELETE /api/portfolios/{id}/transactions/{txid}.
func (s *Server) handleTransactionDelete(w http.ResponseWriter, r *http.Request, portfolioID, transactionID string) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	if err := s.app.Cloud.DeleteTransaction(r.Context(), portfolioID, transactionID); err != nil {
		WriteClientError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
	})
}

// handleTransactionImport handles POST /api/portfolios/{id}/import.
// The request body is a CSV broker export.
func (s *Server) handleTransactionImport(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportSize))
	if err != nil {
		WriteError(w, http.StatusRequestEntityTooLarge, "import payload too large")
		return
	}
	if len(data) == 0 {
		WriteError(w, http.StatusBadRequest, "CSV body is required")
		return
	}

	result, err := s.app.Importer.ImportCSV(r.Context(), portfolioID, data)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
