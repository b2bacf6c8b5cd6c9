package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
)

// RegisterCustomValidations installs the request-level validators on gin's
// binding engine. Called once from main.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("currency", validateCurrency)
}

func validateCurrency(fl validator.FieldLevel) bool {
	return domain.Currency(fl.Field().String()).IsSupported()
}
