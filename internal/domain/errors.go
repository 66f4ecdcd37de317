package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// User errors
	ErrMsgUserNotFound  = "user not found"
	ErrMsgUsernameTaken = "username already registered"

	// Auth errors
	ErrMsgInvalidCredentials = "invalid credentials"
	ErrMsgUnauthorized       = "unauthorized"

	// Item errors
	ErrMsgItemNotFound = "item not found"

	// Cart errors
	ErrMsgCartFull         = "cart is full"
	ErrMsgInvalidCartIndex = "invalid cart index"

	// Commerce errors
	ErrMsgInsufficientFunds = "insufficient funds"

	// Loadout errors
	ErrMsgInsufficientQuantity = "insufficient quantity"
	ErrMsgInvalidSlot          = "invalid slot"
	ErrMsgSlotMismatch         = "item does not fit slot"

	// Progression errors
	ErrMsgUnknownAchievement = "unknown achievement"

	// Upload errors
	ErrMsgUploadTooLarge   = "upload exceeds size limit"
	ErrMsgUnsupportedImage = "unsupported image type"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Transaction errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors.
// These should be used consistently across all layers. Wrap them with
// fmt.Errorf("%w: detail", domain.ErrXxx) for additional context.
var (
	ErrUserNotFound  = errors.New(ErrMsgUserNotFound)
	ErrUsernameTaken = errors.New(ErrMsgUsernameTaken)

	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredentials)
	ErrUnauthorized       = errors.New(ErrMsgUnauthorized)

	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	ErrCartFull         = errors.New(ErrMsgCartFull)
	ErrInvalidCartIndex = errors.New(ErrMsgInvalidCartIndex)

	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)
	ErrInvalidSlot          = errors.New(ErrMsgInvalidSlot)
	ErrSlotMismatch         = errors.New(ErrMsgSlotMismatch)

	ErrUnknownAchievement = errors.New(ErrMsgUnknownAchievement)

	ErrUploadTooLarge   = errors.New(ErrMsgUploadTooLarge)
	ErrUnsupportedImage = errors.New(ErrMsgUnsupportedImage)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
