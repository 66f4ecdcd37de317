package handler

import (
	"net/http"

	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/logger"
	"github.com/cybermarket/server/internal/middleware"
	"github.com/cybermarket/server/internal/store"
)

type TransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// HandleListTransactions returns the purchase ledger, newest first
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Success 200 {object} TransactionsResponse
// @Router /transactions [get]
func HandleListTransactions(svc store.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		transactions, err := svc.ListTransactions(r.Context(), userID)
		if err != nil {
			log.Error("Failed to list transactions", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, TransactionsResponse{Transactions: transactions})
	}
}
