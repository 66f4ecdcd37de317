package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cybermarket/server/internal/catalog"
	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/logger"
	"github.com/cybermarket/server/internal/middleware"
)

type ProductRequest struct {
	Name        string            `json:"name" validate:"required,max=100"`
	Category    string            `json:"category" validate:"required,category"`
	Subcategory string            `json:"subcategory" validate:"omitempty,oneof=armor tactical"`
	Price       int               `json:"price" validate:"min=0"`
	Rarity      string            `json:"rarity" validate:"required,rarity"`
	Stats       map[string]string `json:"stats" validate:"omitempty,max=20"`
	Description string            `json:"description" validate:"max=1000"`
	ImageURL    string            `json:"image_url" validate:"omitempty,max=500"`
	ModelRef    string            `json:"model_ref" validate:"omitempty,max=200"`
}

func (req ProductRequest) toItem(id string) *domain.Item {
	return &domain.Item{
		ID:          id,
		Name:        req.Name,
		Category:    domain.Category(req.Category),
		Subcategory: domain.Subcategory(req.Subcategory),
		Price:       req.Price,
		Rarity:      domain.Rarity(req.Rarity),
		Stats:       req.Stats,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ModelRef:    req.ModelRef,
	}
}

// HandleCreateProduct adds a catalog entry
// @Summary Create product
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ProductRequest true "Product details"
// @Success 201 {object} domain.Item
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/products [post]
func HandleCreateProduct(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode create product request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid create product request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		item := req.toItem("")
		if err := svc.Create(r.Context(), item); err != nil {
			log.Error("Failed to create product", "error", err, "name", req.Name)
			respondServiceError(w, err)
			return
		}

		log.Info("Product created", "item_id", item.ID, "name", item.Name,
			"admin", middleware.UserIDFromContext(r.Context()))

		respondJSON(w, http.StatusCreated, item)
	}
}

// HandleUpdateProduct replaces a catalog entry
// @Summary Update product
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body ProductRequest true "Product details"
// @Success 200 {object} domain.Item
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/products/{id} [put]
func HandleUpdateProduct(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		itemID := chi.URLParam(r, "id")

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode update product request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid update product request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		item := req.toItem(itemID)
		if err := svc.Update(r.Context(), item); err != nil {
			log.Warn("Failed to update product", "error", err, "item_id", itemID)
			respondServiceError(w, err)
			return
		}

		log.Info("Product updated", "item_id", itemID,
			"admin", middleware.UserIDFromContext(r.Context()))

		respondJSON(w, http.StatusOK, item)
	}
}

// HandleDeleteProduct removes a catalog entry
// @Summary Delete product
// @Tags admin
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/products/{id} [delete]
func HandleDeleteProduct(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		itemID := chi.URLParam(r, "id")

		if err := svc.Delete(r.Context(), itemID); err != nil {
			log.Warn("Failed to delete product", "error", err, "item_id", itemID)
			respondServiceError(w, err)
			return
		}

		log.Info("Product deleted", "item_id", itemID,
			"admin", middleware.UserIDFromContext(r.Context()))

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Product deleted"})
	}
}
