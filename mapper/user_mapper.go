// Package mapper translates users between the nested wire shape and the flat storage shape.
package mapper

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/muhammadheryan/contacts/constant"
	"github.com/muhammadheryan/contacts/model"
	"github.com/shopspring/decimal"
)

// Rule binds a storage column to the wire paths that may supply it, highest precedence first.
type Rule struct {
	Column string
	Paths  []string
	// Trim strips surrounding whitespace from string input.
	Trim bool
}

// Rules is evaluated in order once per request. Flat fields win over their nested equivalents.
var Rules = []Rule{
	{Column: constant.ColumnName, Paths: []string{"name"}, Trim: true},
	{Column: constant.ColumnEmail, Paths: []string{"email"}, Trim: true},
	{Column: constant.ColumnPhone, Paths: []string{"phone"}, Trim: true},
	{Column: constant.ColumnCompany, Paths: []string{"company"}, Trim: true},
	{Column: constant.ColumnStreet, Paths: []string{"street", "address.street"}, Trim: true},
	{Column: constant.ColumnCity, Paths: []string{"city", "address.city"}, Trim: true},
	{Column: constant.ColumnZip, Paths: []string{"zip", "address.zip"}, Trim: true},
	{Column: constant.ColumnGeoLat, Paths: []string{"geo_lat", "address.geo.lat"}},
	{Column: constant.ColumnGeoLng, Paths: []string{"geo_lng", "address.geo.lng"}},
}

// Resolve reads every rule out of payload. For each column the first path carrying a non-null
// value wins; a column whose present paths are all null resolves to an explicit null; a column
// with no present path is absent.
func Resolve(payload model.UserPayload) model.UserInput {
	in := make(model.UserInput, len(Rules))
	for _, r := range Rules {
		if f := resolveRule(payload, r); f.Present {
			in[r.Column] = f
		}
	}
	return in
}

func resolveRule(payload model.UserPayload, r Rule) model.Field {
	var f model.Field
	for _, path := range r.Paths {
		raw, ok := lookup(payload, path)
		if !ok {
			continue
		}
		if !f.Present {
			f.Present = true
			f.Path = path
		}
		if raw == nil {
			continue
		}

		f.Path = path
		value, ok := coerce(raw, r.Trim)
		if !ok {
			f.WrongType = true
			return f
		}
		f.Value = &value
		return f
	}
	return f
}

// lookup walks a dotted path. A null parent object counts as an explicit null for every path
// below it.
func lookup(payload map[string]any, path string) (any, bool) {
	var cur any = payload
	for _, key := range strings.Split(path, ".") {
		if cur == nil {
			return nil, true
		}
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func coerce(raw any, trim bool) (string, bool) {
	switch v := raw.(type) {
	case string:
		if trim {
			v = strings.TrimSpace(v)
		}
		return v, true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return v.String(), true
		}
		return d.String(), true
	case float64:
		return decimal.NewFromFloat(v).String(), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// ToEntity builds the full insert row. Absent columns are NULL.
func ToEntity(in model.UserInput) *model.UserEntity {
	return &model.UserEntity{
		Name:    deref(in.Get(constant.ColumnName).Value),
		Email:   deref(in.Get(constant.ColumnEmail).Value),
		Phone:   in.Get(constant.ColumnPhone).Value,
		Company: in.Get(constant.ColumnCompany).Value,
		Street:  in.Get(constant.ColumnStreet).Value,
		City:    in.Get(constant.ColumnCity).Value,
		Zip:     in.Get(constant.ColumnZip).Value,
		GeoLat:  in.Get(constant.ColumnGeoLat).Value,
		GeoLng:  in.Get(constant.ColumnGeoLng).Value,
	}
}

// ToPatch builds the update write-set: only columns present in the request, in rule order.
func ToPatch(in model.UserInput) model.UserPatch {
	patch := make(model.UserPatch, 0, len(in))
	for _, r := range Rules {
		f := in.Get(r.Column)
		if !f.Present {
			continue
		}
		patch = append(patch, model.ColumnValue{Column: r.Column, Value: f.Value})
	}
	return patch
}

// ToWire nests the flat row back under address. Missing address parts become "".
func ToWire(e *model.UserEntity) model.User {
	updatedAt := e.CreatedAt
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}
	return model.User{
		ID:      e.ID,
		Name:    e.Name,
		Email:   e.Email,
		Phone:   e.Phone,
		Company: e.Company,
		Address: model.Address{
			Street: deref(e.Street),
			City:   deref(e.City),
			Zip:    deref(e.Zip),
			Geo: model.Geo{
				Lat: deref(e.GeoLat),
				Lng: deref(e.GeoLng),
			},
		},
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func ToWireList(entities []model.UserEntity) []model.User {
	users := make([]model.User, 0, len(entities))
	for i := range entities {
		users = append(users, ToWire(&entities[i]))
	}
	return users
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
