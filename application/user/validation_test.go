package user

import (
	"strings"
	"testing"

	"github.com/muhammadheryan/contacts/constant"
	"github.com/muhammadheryan/contacts/model"
	"github.com/stretchr/testify/assert"
)

func present(path, value string) model.Field {
	return model.Field{Path: path, Present: true, Value: &value}
}

func TestValidateInput(t *testing.T) {
	valid := model.UserInput{
		constant.ColumnName:  present("name", "A"),
		constant.ColumnEmail: present("email", "a@x.com"),
		constant.ColumnPhone: present("phone", "+1 (555) 010-0100"),
	}

	tests := []struct {
		name    string
		in      model.UserInput
		partial bool
		want    []model.FieldError
	}{
		{
			name: "success: minimal create",
			in:   valid,
		},
		{
			name: "success: zero and negative coordinates",
			in: model.UserInput{
				constant.ColumnName:   present("name", "A"),
				constant.ColumnEmail:  present("email", "a@x.com"),
				constant.ColumnPhone:  present("phone", "555"),
				constant.ColumnGeoLat: present("geo_lat", "0"),
				constant.ColumnGeoLng: present("address.geo.lng", "-122.4194"),
			},
		},
		{
			name: "success: optional field cleared with null",
			in: model.UserInput{
				constant.ColumnCompany: {Path: "company", Present: true},
			},
			partial: true,
		},
		{
			name:    "success: empty partial update",
			in:      model.UserInput{},
			partial: true,
		},
		{
			name: "error: create without required fields",
			in:   model.UserInput{},
			want: []model.FieldError{
				{Field: "name", Message: "Name is required"},
				{Field: "email", Message: "Email is required"},
				{Field: "phone", Message: "Phone number is required"},
			},
		},
		{
			name: "error: required field explicitly null on update",
			in: model.UserInput{
				constant.ColumnEmail: {Path: "email", Present: true},
			},
			partial: true,
			want:    []model.FieldError{{Field: "email", Message: "Email is required"}},
		},
		{
			name: "error: name too long",
			in: model.UserInput{
				constant.ColumnName: present("name", strings.Repeat("x", 101)),
			},
			partial: true,
			want:    []model.FieldError{{Field: "name", Message: "Name must be at most 100 characters"}},
		},
		{
			name: "error: zip too long reported under nested path",
			in: model.UserInput{
				constant.ColumnZip: present("address.zip", strings.Repeat("9", 21)),
			},
			partial: true,
			want:    []model.FieldError{{Field: "address.zip", Message: "ZIP must be at most 20 characters"}},
		},
		{
			name: "error: letters in phone",
			in: model.UserInput{
				constant.ColumnPhone: present("phone", "ext. 12"),
			},
			partial: true,
			want:    []model.FieldError{{Field: "phone", Message: "Please enter a valid phone number"}},
		},
		{
			name: "error: non-numeric coordinate",
			in: model.UserInput{
				constant.ColumnGeoLng: present("geo_lng", "12,5"),
			},
			partial: true,
			want:    []model.FieldError{{Field: "geo_lng", Message: "Longitude must be a valid number"}},
		},
		{
			name: "error: object where a string is expected",
			in: model.UserInput{
				constant.ColumnCity: {Path: "address.city", Present: true, WrongType: true},
			},
			partial: true,
			want:    []model.FieldError{{Field: "address.city", Message: "City must be a string"}},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := validateInput(tt.in, tt.partial)
			assert.Equal(t, tt.want, got)
		})
	}
}
