package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/cybermarket/server/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator with domain-specific rules
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("category", validateCategory)
	_ = v.RegisterValidation("slot", validateSlot)
	_ = v.RegisterValidation("avatar", validateAvatar)
	_ = v.RegisterValidation("rarity", validateRarity)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// Custom validation for item categories. Empty is allowed; pair with
// 'required' when the field is mandatory.
func validateCategory(fl validator.FieldLevel) bool {
	c := fl.Field().String()
	if c == "" {
		return true
	}
	return domain.ValidCategory(domain.Category(c))
}

// Custom validation for loadout slots
func validateSlot(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	return domain.ValidSlot(domain.Slot(s))
}

// Custom validation for avatar ids
func validateAvatar(fl validator.FieldLevel) bool {
	a := fl.Field().String()
	if a == "" {
		return true
	}
	return domain.ValidAvatar(a)
}

// Custom validation for item rarities
func validateRarity(fl validator.FieldLevel) bool {
	r := fl.Field().String()
	if r == "" {
		return true
	}
	return domain.ValidRarity(domain.Rarity(r))
}
