package dto

import (
	"regexp"

	"commercial-paper-verifier/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("public_key", validatePublicKey)
		_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	}
}

// validatePublicKey accepts the "ed25519:<base64>" form of a 32-byte key.
func validatePublicKey(fl validator.FieldLevel) bool {
	_, err := domain.ParsePublicKey(fl.Field().String())
	return err == nil
}

// validateCurrencyCode accepts three upper-case letters.
func validateCurrencyCode(fl validator.FieldLevel) bool {
	return currencyCodeRe.MatchString(fl.Field().String())
}
