package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cybermarket/server/internal/catalog"
	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/logger"
)

// Query parameter names for catalog listing
const (
	QueryParamCategory = "category"
	QueryParamSearch   = "search"
	QueryParamSort     = "sort"
)

type ListItemsResponse struct {
	Items []domain.Item `json:"items"`
	Count int           `json:"count"`
}

// HandleListItems returns the catalog, optionally filtered and sorted
// @Summary List catalog items
// @Description List items filtered by category and search text, sorted by name or price
// @Tags catalog
// @Produce json
// @Param category query string false "Category filter (weapon, implant, gear, or all)"
// @Param search query string false "Case-insensitive name/description match"
// @Param sort query string false "Sort order (name, price-asc, price-desc)"
// @Success 200 {object} ListItemsResponse
// @Failure 500 {object} ErrorResponse
// @Router /catalog [get]
func HandleListItems(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		filter := catalog.Filter{
			Category: r.URL.Query().Get(QueryParamCategory),
			Search:   r.URL.Query().Get(QueryParamSearch),
			Sort:     r.URL.Query().Get(QueryParamSort),
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			log.Error("Failed to list items", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgListItemsFailed)
			return
		}

		respondJSON(w, http.StatusOK, ListItemsResponse{Items: items, Count: len(items)})
	}
}

// HandleGetItem returns one catalog item by ID
// @Summary Get catalog item
// @Tags catalog
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} domain.Item
// @Failure 404 {object} ErrorResponse
// @Router /catalog/{id} [get]
func HandleGetItem(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		itemID := chi.URLParam(r, "id")
		item, err := svc.Get(r.Context(), itemID)
		if err != nil {
			log.Warn("Item lookup failed", "error", err, "item_id", itemID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, item)
	}
}
