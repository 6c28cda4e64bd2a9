package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
)

// RegisterCustomValidators installs domain-specific binding validations on
// gin's validator engine. Call once at startup before serving requests.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("herbtype", validateHerbType)
	}
}

// validateHerbType accepts only the known registrable herb categories.
func validateHerbType(fl validator.FieldLevel) bool {
	return domain.IsKnownHerbType(fl.Field().String())
}
