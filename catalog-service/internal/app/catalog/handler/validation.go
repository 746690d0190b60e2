package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"kinopark/catalog-service/internal/app/catalog/entity"
)

// registerValidations добавляет доменные правила в binding engine.
// subscription принимает только pro и simple.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("subscription", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == entity.StatusPro || value == entity.StatusSimple
	})
}
