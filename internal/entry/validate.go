// Package entry validates and submits new movement records.
package entry

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/erazemk/milasset/internal/model"
)

// FieldErrors maps a draft's JSON field name to a message for the user.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterValidation("equipmenttype", func(fl validator.FieldLevel) bool {
		return model.EquipmentType(fl.Field().String()).Valid()
	})

	return v
}

// Display names used in "is required" messages.
var fieldLabels = map[string]string{
	"equipmentType": "Equipment type",
	"quantity":      "Quantity",
	"baseId":        "Base",
	"fromBaseId":    "Source base",
	"toBaseId":      "Destination base",
	"date":          "Date",
	"purchaseOrder": "Purchase order",
	"supplier":      "Supplier",
	"cost":          "Cost",
	"equipmentId":   "Equipment",
	"personnelId":   "Personnel",
	"dateAssigned":  "Assignment date",
	"purpose":       "Purpose",
}

func fieldLabel(field string) string {
	if label := fieldLabels[field]; label != "" {
		return label
	}
	return field
}

// NumberMessage is the message for a numeric field whose input is not a
// number at all.
func NumberMessage(field string) string {
	return fieldLabel(field) + " must be a number"
}

func message(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "gt":
		return label + " must be greater than " + fe.Param()
	case "nefield":
		return "Source and destination bases must be different"
	case "equipmenttype":
		return "Unknown equipment type"
	case "datetime":
		return label + " must be a date in YYYY-MM-DD form"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	default:
		return label + " is invalid"
	}
}

// Validate checks a draft's field constraints. It returns nil when the draft
// is valid.
func Validate(draft any) FieldErrors {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return FieldErrors{"": err.Error()}
	}

	fields := make(FieldErrors, len(ves))
	for _, ve := range ves {
		if _, seen := fields[ve.Field()]; !seen {
			fields[ve.Field()] = message(ve)
		}
	}
	return fields
}
