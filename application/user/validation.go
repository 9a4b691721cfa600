package user

import (
	"github.com/muhammadheryan/contacts/constant"
	"github.com/muhammadheryan/contacts/model"
	validatorx "github.com/muhammadheryan/contacts/utils/validator"
)

type fieldRule struct {
	column string
	label  string
	// required fields must be supplied on create and can never be cleared.
	required bool
	tag      string
	messages map[string]string
}

var fieldRules = []fieldRule{
	{
		column:   constant.ColumnName,
		label:    "Name",
		required: true,
		tag:      "required,max=100",
		messages: map[string]string{
			"required": "Name is required",
			"max":      "Name must be at most 100 characters",
		},
	},
	{
		column:   constant.ColumnEmail,
		label:    "Email",
		required: true,
		tag:      "required,email,max=255",
		messages: map[string]string{
			"required": "Email is required",
			"email":    "Please enter a valid email",
			"max":      "Email must be at most 255 characters",
		},
	},
	{
		column:   constant.ColumnPhone,
		label:    "Phone number",
		required: true,
		tag:      "required,phone,max=50",
		messages: map[string]string{
			"required": "Phone number is required",
			"phone":    "Please enter a valid phone number",
			"max":      "Phone number must be at most 50 characters",
		},
	},
	{
		column:   constant.ColumnCompany,
		label:    "Company",
		tag:      "omitempty,max=255",
		messages: map[string]string{"max": "Company must be at most 255 characters"},
	},
	{
		column:   constant.ColumnStreet,
		label:    "Street",
		tag:      "omitempty,max=255",
		messages: map[string]string{"max": "Street must be at most 255 characters"},
	},
	{
		column:   constant.ColumnCity,
		label:    "City",
		tag:      "omitempty,max=255",
		messages: map[string]string{"max": "City must be at most 255 characters"},
	},
	{
		column:   constant.ColumnZip,
		label:    "ZIP",
		tag:      "omitempty,max=20",
		messages: map[string]string{"max": "ZIP must be at most 20 characters"},
	},
	{
		column:   constant.ColumnGeoLat,
		label:    "Latitude",
		tag:      "omitempty,coordinate,max=32",
		messages: map[string]string{"coordinate": "Latitude must be a valid number", "max": "Latitude must be a valid number"},
	},
	{
		column:   constant.ColumnGeoLng,
		label:    "Longitude",
		tag:      "omitempty,coordinate,max=32",
		messages: map[string]string{"coordinate": "Longitude must be a valid number", "max": "Longitude must be a valid number"},
	},
}

// validateInput checks every rule and returns all violations. With partial set, absent
// fields are skipped.
func validateInput(in model.UserInput, partial bool) []model.FieldError {
	var violations []model.FieldError
	for _, r := range fieldRules {
		f := in.Get(r.column)
		path := f.Path
		if path == "" {
			path = r.column
		}

		if !f.Present {
			if !partial && r.required {
				violations = append(violations, model.FieldError{Field: path, Message: r.messages["required"]})
			}
			continue
		}

		if f.WrongType {
			violations = append(violations, model.FieldError{Field: path, Message: r.label + " must be a string"})
			continue
		}

		value := ""
		if f.Value != nil {
			value = *f.Value
		} else if !r.required {
			continue
		}

		if err := validatorx.ValidateVar(value, r.tag); err != nil {
			msg, ok := r.messages[validatorx.FailedTag(err)]
			if !ok {
				msg = r.label + " is invalid"
			}
			violations = append(violations, model.FieldError{Field: path, Message: msg})
		}
	}
	return violations
}
