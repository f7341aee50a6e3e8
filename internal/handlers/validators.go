package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/corebank/ledger_backend/internal/core/domain"
)

// Custom binding validators shared by the request DTOs.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("accountstatus", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseAccountStatus(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseAccountType(fl.Field().String())
		return err == nil
	})
}
