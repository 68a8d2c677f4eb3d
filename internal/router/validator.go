package router

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	hhmmPattern  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,19}$`)

	maxLongitude = decimal.NewFromInt(180)
	maxLatitude  = decimal.NewFromInt(90)
)

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator with the pharmacy field rules registered.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("coordinate", degreesWithin(maxLongitude))
	_ = v.RegisterValidation("lat_coordinate", degreesWithin(maxLatitude))
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// degreesWithin accepts decimal degrees in [-limit, limit].
func degreesWithin(limit decimal.Decimal) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return d.Abs().LessThanOrEqual(limit)
	}
}
