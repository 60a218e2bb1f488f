package dto

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// TagName is the struct tag shared by gin binding and service-side validation.
const TagName = "binding"

// RegisterValidators teaches v about decimal.Decimal fields and the
// decimal_positive, decimal_nonzero and decimal_cents rules.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})

	if err := v.RegisterValidation("decimal_positive", func(fl validator.FieldLevel) bool {
		d, ok := parseField(fl)
		return ok && d.IsPositive()
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("decimal_nonzero", func(fl validator.FieldLevel) bool {
		d, ok := parseField(fl)
		return ok && !d.IsZero()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("decimal_cents", func(fl validator.FieldLevel) bool {
		d, ok := parseField(fl)
		return ok && IsWholeCents(d)
	})
}

// IsWholeCents reports whether d has no digits below the cent. Trailing
// zeros are fine, so 10.500 passes and 10.505 does not.
func IsWholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}

// NewValidator returns a validator configured like the HTTP binding engine.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName(TagName)
	// Registration only fails on malformed tag names, which are constants here.
	_ = RegisterValidators(v)
	return v
}

func decimalValue(field reflect.Value) interface{} {
	switch val := field.Interface().(type) {
	case decimal.Decimal:
		return val.String()
	case decimal.NullDecimal:
		if val.Valid {
			return val.Decimal.String()
		}
	}
	return ""
}

func parseField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	if fl.Field().Kind() != reflect.String {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
