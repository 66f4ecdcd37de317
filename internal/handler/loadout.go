package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/loadout"
	"github.com/cybermarket/server/internal/logger"
	"github.com/cybermarket/server/internal/middleware"
)

type EquipRequest struct {
	ItemID string `json:"item_id" validate:"required,max=100"`
	// Slot is optional; when empty the item is routed by category policy.
	Slot string `json:"slot" validate:"omitempty,slot"`
}

type UnequipRequest struct {
	Slot string `json:"slot" validate:"required,slot"`
}

type LoadoutResponse struct {
	Loadout *domain.Loadout `json:"loadout"`
}

// HandleGetLoadout returns the five equip slots
// @Summary Get loadout
// @Tags loadout
// @Produce json
// @Success 200 {object} LoadoutResponse
// @Router /loadout [get]
func HandleGetLoadout(svc loadout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		l, err := svc.Get(r.Context(), userID)
		if err != nil {
			log.Error("Failed to get loadout", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, LoadoutResponse{Loadout: l})
	}
}

// HandleEquip places an owned item into a slot
// @Summary Equip item
// @Description Equip an owned item, either into an explicit slot or routed by category
// @Tags loadout
// @Accept json
// @Produce json
// @Param request body EquipRequest true "Item and optional slot"
// @Success 200 {object} LoadoutResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /loadout/equip [post]
func HandleEquip(svc loadout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		var req EquipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode equip request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid equip request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		var (
			l   *domain.Loadout
			err error
		)
		if req.Slot == "" {
			l, err = svc.EquipAuto(r.Context(), userID, req.ItemID)
		} else {
			l, err = svc.Equip(r.Context(), userID, req.ItemID, domain.Slot(req.Slot))
		}
		if err != nil {
			log.Warn("Failed to equip item", "error", err, "user_id", userID, "item_id", req.ItemID, "slot", req.Slot)
			respondServiceError(w, err)
			return
		}

		log.Info("Item equipped", "user_id", userID, "item_id", req.ItemID, "slot", req.Slot)

		respondJSON(w, http.StatusOK, LoadoutResponse{Loadout: l})
	}
}

// HandleUnequip clears a slot
// @Summary Unequip slot
// @Tags loadout
// @Accept json
// @Produce json
// @Param request body UnequipRequest true "Slot to clear"
// @Success 200 {object} LoadoutResponse
// @Failure 400 {object} ErrorResponse
// @Router /loadout/unequip [post]
func HandleUnequip(svc loadout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		var req UnequipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode unequip request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid unequip request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		l, err := svc.Unequip(r.Context(), userID, domain.Slot(req.Slot))
		if err != nil {
			log.Warn("Failed to unequip slot", "error", err, "user_id", userID, "slot", req.Slot)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, LoadoutResponse{Loadout: l})
	}
}
