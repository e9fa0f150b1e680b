// Package validation registers the custom binding tags used by request DTOs.
package validation

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

// TagPhone is the binding tag for phone numbers.
const TagPhone = "phone"

// ErrUnsupportedEngine is returned when gin is configured with a validator other than go-playground.
var ErrUnsupportedEngine = errors.New("validation: unsupported binding engine")

// Register installs the custom tags on gin's default validator.
// Numbers without a leading + are parsed in defaultRegion.
func Register(defaultRegion string) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return ErrUnsupportedEngine
	}
	return RegisterOn(v, defaultRegion)
}

// RegisterOn installs the custom tags on v.
func RegisterOn(v *validator.Validate, defaultRegion string) error {
	region := strings.ToUpper(defaultRegion)
	return v.RegisterValidation(TagPhone, func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String(), region)
	})
}

// IsPhone reports whether s is a valid phone number.
func IsPhone(s, defaultRegion string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	num, err := phonenumbers.Parse(s, defaultRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}
