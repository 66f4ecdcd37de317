package handler

import (
	"errors"
	"net/http"

	"github.com/cybermarket/server/internal/domain"
)

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgMethodNotAllowed = "Method not allowed"
	ErrMsgInvalidRequest   = "Invalid request body"

	// Auth error messages
	ErrMsgSignupFailed = "Failed to create account"
	ErrMsgLoginFailed  = "Failed to log in"

	// Catalog error messages
	ErrMsgListItemsFailed  = "Failed to list items"
	ErrMsgCreateItemFailed = "Failed to create item"
	ErrMsgUpdateItemFailed = "Failed to update item"
	ErrMsgDeleteItemFailed = "Failed to delete item"

	// Cart and checkout error messages
	ErrMsgGetCartFailed    = "Failed to get cart"
	ErrMsgAddToCartFailed  = "Failed to add item to cart"
	ErrMsgRemoveFromCart   = "Failed to remove item from cart"
	ErrMsgClearCartFailed  = "Failed to clear cart"
	ErrMsgCheckoutFailed   = "Failed to process checkout"
	ErrMsgGetBalanceFailed = "Failed to get balance"

	// Favorites and ledger error messages
	ErrMsgToggleFavoriteFailed   = "Failed to toggle favorite"
	ErrMsgListFavoritesFailed    = "Failed to list favorites"
	ErrMsgListTransactionsFailed = "Failed to list transactions"
	ErrMsgGetInventoryFailed     = "Failed to get inventory"

	// Loadout error messages
	ErrMsgGetLoadoutFailed = "Failed to get loadout"
	ErrMsgEquipFailed      = "Failed to equip item"
	ErrMsgUnequipFailed    = "Failed to unequip item"

	// Profile error messages
	ErrMsgGetProfileFailed    = "Failed to get profile"
	ErrMsgUpdateProfileFailed = "Failed to update profile"
	ErrMsgAddXPFailed         = "Failed to add experience"
	ErrMsgUnlockFailed        = "Failed to unlock achievement"
	ErrMsgEvaluateFailed      = "Failed to evaluate achievements"

	// Upload error messages
	ErrMsgUploadFailed      = "Failed to store upload"
	ErrMsgMissingUploadFile = "Missing file field"
)

// User-facing error messages derived from domain errors
const (
	ErrMsgUnknownError          = "Unknown error"
	ErrMsgUserNotFoundError     = "User not found"
	ErrMsgItemNotFoundError     = "Item not found"
	ErrMsgUsernameTakenError    = "HANDLE ALREADY REGISTERED"
	ErrMsgBadCredentialsError   = "ACCESS DENIED. INVALID CREDENTIALS."
	ErrMsgCartFullError         = "Cart is full"
	ErrMsgBadCartIndexError     = "Invalid cart index"
	ErrMsgNotEnoughCreditsError = "Not enough credits"
	ErrMsgNotOwnedError         = "You don't own enough of that item"
	ErrMsgBadSlotError          = "Invalid loadout slot"
	ErrMsgSlotMismatchError     = "Item does not fit that slot"
	ErrMsgUnknownBadgeError     = "Unknown achievement"
	ErrMsgUploadTooLargeError   = "Upload exceeds the size limit"
	ErrMsgBadImageError         = "Unsupported image type"
	ErrMsgInvalidInputError     = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage converts internal service errors to appropriate
// HTTP status codes and messages that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, ErrMsgUsernameTakenError
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrMsgBadCredentialsError
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrMsgBadCredentialsError
	case errors.Is(err, domain.ErrCartFull):
		return http.StatusBadRequest, ErrMsgCartFullError
	case errors.Is(err, domain.ErrInvalidCartIndex):
		return http.StatusBadRequest, ErrMsgBadCartIndexError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughCreditsError
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return http.StatusBadRequest, ErrMsgNotOwnedError
	case errors.Is(err, domain.ErrInvalidSlot):
		return http.StatusBadRequest, ErrMsgBadSlotError
	case errors.Is(err, domain.ErrSlotMismatch):
		return http.StatusBadRequest, ErrMsgSlotMismatchError
	case errors.Is(err, domain.ErrUnknownAchievement):
		return http.StatusBadRequest, ErrMsgUnknownBadgeError
	case errors.Is(err, domain.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge, ErrMsgUploadTooLargeError
	case errors.Is(err, domain.ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType, ErrMsgBadImageError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	default:
		return http.StatusInternalServerError, ErrMsgUnknownError
	}
}

// respondServiceError maps a domain error and writes the JSON error response
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}
