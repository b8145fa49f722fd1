package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Nzyazin/ledger/internal/core/logger"
	"github.com/Nzyazin/ledger/internal/core/models"
	"github.com/Nzyazin/ledger/internal/core/repository"
	"github.com/Nzyazin/ledger/internal/core/usecase"
	"github.com/gorilla/mux"
)

type TransactionHandler struct {
	usecase usecase.TransactionUsecase
	log     logger.Logger
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewTransactionHandler(usecase usecase.TransactionUsecase, log logger.Logger) *TransactionHandler {
	return &TransactionHandler{usecase: usecase, log: log}
}

func (h *TransactionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/transactions", h.SubmitTransaction).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/transactions", h.ListTransactions).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/transactions/{id:[0-9]+}", h.GetTransaction).Methods(http.MethodGet)
}

func (h *TransactionHandler) SubmitTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeRequest(w, r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !req.Amount.Valid {
		h.log.Warn("Amount missing", logger.StringField("reference", req.Reference))
		respondWithError(w, http.StatusBadRequest, "amount is required")
		return
	}

	result, err := h.usecase.ProcessTransaction(r.Context(), req.ToTransaction())
	if err != nil {
		h.handleProcessError(w, req, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.usecase.ListTransactions(r.Context())
	if err != nil {
		h.log.Error("Failed to list transactions", logger.ErrorField("error", err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	respondWithJSON(w, http.StatusOK, transactions)
}

func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	txn, err := h.usecase.GetTransaction(r.Context(), id)
	switch {
	case errors.Is(err, repository.ErrTransactionNotFound):
		respondWithError(w, http.StatusNotFound, "Transaction not found")
	case err != nil:
		h.log.Error("Failed to get transaction", logger.Int64Field("id", id), logger.ErrorField("error", err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get transaction")
	default:
		respondWithJSON(w, http.StatusOK, txn)
	}
}

func (h *TransactionHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (*models.TransactionRequest, error) {
	var req models.TransactionRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Failed to decode request body", logger.ErrorField("error", err))
		return nil, fmt.Errorf("invalid request payload")
	}
	return &req, nil
}

func (h *TransactionHandler) handleProcessError(w http.ResponseWriter, req *models.TransactionRequest, err error) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithError(w, http.StatusBadRequest, verr.Message)
	default:
		h.log.Error("Failed to process transaction",
			logger.StringField("reference", req.Reference),
			logger.StringField("sender_account", req.SenderAccount),
			logger.ErrorField("error", err),
		)
		respondWithError(w, http.StatusInternalServerError, "Failed to process transaction")
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
