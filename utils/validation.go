package utils

import (
	"github.com/Edmundtutu/foody-sub002/entity"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("pricing_mode", func(fl validator.FieldLevel) bool {
		return entity.PricingMode(fl.Field().String()).Valid()
	})
}
