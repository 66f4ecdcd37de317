package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/logger"
	"github.com/cybermarket/server/internal/middleware"
	"github.com/cybermarket/server/internal/store"
)

type AddToCartRequest struct {
	ItemID string `json:"item_id" validate:"required,max=100"`
}

type RemoveFromCartRequest struct {
	Index int `json:"index" validate:"min=0"`
}

type CartResponse struct {
	Cart  []domain.Item `json:"cart"`
	Total int           `json:"total"`
}

func cartResponse(cart []domain.Item) CartResponse {
	total := 0
	for _, item := range cart {
		total += item.Price
	}
	return CartResponse{Cart: cart, Total: total}
}

// HandleGetCart returns the authenticated user's pending cart
// @Summary Get cart
// @Tags cart
// @Produce json
// @Success 200 {object} CartResponse
// @Failure 401 {object} ErrorResponse
// @Router /cart [get]
func HandleGetCart(svc store.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		cart, err := svc.GetCart(r.Context(), userID)
		if err != nil {
			log.Error("Failed to get cart", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, cartResponse(cart))
	}
}

// HandleAddToCart adds a catalog item to the cart
// @Summary Add item to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body AddToCartRequest true "Item to add"
// @Success 200 {object} CartResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cart [post]
func HandleAddToCart(svc store.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		var req AddToCartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode add to cart request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid add to cart request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		cart, err := svc.AddToCart(r.Context(), userID, req.ItemID)
		if err != nil {
			log.Warn("Failed to add to cart", "error", err, "user_id", userID, "item_id", req.ItemID)
			respondServiceError(w, err)
			return
		}

		log.Info("Item added to cart", "user_id", userID, "item_id", req.ItemID, "cart_size", len(cart))

		respondJSON(w, http.StatusOK, cartResponse(cart))
	}
}

// HandleRemoveFromCart removes the cart entry at the given index
// @Summary Remove cart entry
// @Tags cart
// @Accept json
// @Produce json
// @Param request body RemoveFromCartRequest true "Entry index"
// @Success 200 {object} CartResponse
// @Failure 400 {object} ErrorResponse
// @Router /cart/remove [post]
func HandleRemoveFromCart(svc store.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		var req RemoveFromCartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode remove from cart request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid remove from cart request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		cart, err := svc.RemoveFromCart(r.Context(), userID, req.Index)
		if err != nil {
			log.Warn("Failed to remove from cart", "error", err, "user_id", userID, "index", req.Index)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, cartResponse(cart))
	}
}

// HandleClearCart empties the cart without purchasing
// @Summary Clear cart
// @Tags cart
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /cart [delete]
func HandleClearCart(svc store.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		if err := svc.ClearCart(r.Context(), userID); err != nil {
			log.Error("Failed to clear cart", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Cart cleared"})
	}
}

// HandleCheckout purchases the cart contents against the credit balance.
// A declined checkout (insufficient funds) is still a 200: the outcome is
// carried in the response body, matching the storefront's terminal-style UX.
// @Summary Checkout
// @Tags cart
// @Produce json
// @Success 200 {object} store.CheckoutResult
// @Failure 401 {object} ErrorResponse
// @Router /cart/checkout [post]
func HandleCheckout(svc store.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		result, err := svc.Checkout(r.Context(), userID)
		if err != nil {
			log.Error("Checkout failed", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		log.Info("Checkout processed", "user_id", userID, "success", result.Success, "balance", result.Balance)

		respondJSON(w, http.StatusOK, result)
	}
}

type FavoritesResponse struct {
	Favorites []string `json:"favorites"`
}

type ToggleFavoriteRequest struct {
	ItemID string `json:"item_id" validate:"required,max=100"`
}

// HandleToggleFavorite flips an item's favorite status
// @Summary Toggle favorite
// @Tags favorites
// @Accept json
// @Produce json
// @Param request body ToggleFavoriteRequest true "Item to toggle"
// @Success 200 {object} FavoritesResponse
// @Failure 400 {object} ErrorResponse
// @Router /favorites/toggle [post]
func HandleToggleFavorite(svc store.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		var req ToggleFavoriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode toggle favorite request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid toggle favorite request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		favorites, err := svc.ToggleFavorite(r.Context(), userID, req.ItemID)
		if err != nil {
			log.Warn("Failed to toggle favorite", "error", err, "user_id", userID, "item_id", req.ItemID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, FavoritesResponse{Favorites: favorites})
	}
}

// HandleListFavorites returns the user's favorite item IDs
// @Summary List favorites
// @Tags favorites
// @Produce json
// @Success 200 {object} FavoritesResponse
// @Router /favorites [get]
func HandleListFavorites(svc store.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		favorites, err := svc.ListFavorites(r.Context(), userID)
		if err != nil {
			log.Error("Failed to list favorites", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, FavoritesResponse{Favorites: favorites})
	}
}

type InventoryResponse struct {
	Inventory []domain.Item `json:"inventory"`
}

// HandleGetInventory returns the purchased items
// @Summary Get inventory
// @Tags inventory
// @Produce json
// @Success 200 {object} InventoryResponse
// @Router /inventory [get]
func HandleGetInventory(svc store.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		inventory, err := svc.GetInventory(r.Context(), userID)
		if err != nil {
			log.Error("Failed to get inventory", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, InventoryResponse{Inventory: inventory})
	}
}

type BalanceResponse struct {
	Credits int `json:"credits"`
}

// HandleGetBalance returns the current credit balance
// @Summary Get balance
// @Tags wallet
// @Produce json
// @Success 200 {object} BalanceResponse
// @Router /wallet [get]
func HandleGetBalance(svc store.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		credits, err := svc.GetBalance(r.Context(), userID)
		if err != nil {
			log.Error("Failed to get balance", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, BalanceResponse{Credits: credits})
	}
}
