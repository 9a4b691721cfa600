package mapper_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/muhammadheryan/contacts/constant"
	"github.com/muhammadheryan/contacts/mapper"
	"github.com/muhammadheryan/contacts/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) model.UserPayload {
	t.Helper()
	dec := json.NewDecoder(bytes.NewBufferString(body))
	dec.UseNumber()
	var p model.UserPayload
	require.NoError(t, dec.Decode(&p))
	return p
}

func strPtr(s string) *string { return &s }

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		column  string
		want    model.Field
		present bool
	}{
		{
			name:    "success: flat field",
			body:    `{"street":"Kulas Light"}`,
			column:  constant.ColumnStreet,
			want:    model.Field{Path: "street", Present: true, Value: strPtr("Kulas Light")},
			present: true,
		},
		{
			name:    "success: nested field",
			body:    `{"address":{"city":"Gwenborough"}}`,
			column:  constant.ColumnCity,
			want:    model.Field{Path: "address.city", Present: true, Value: strPtr("Gwenborough")},
			present: true,
		},
		{
			name:    "success: flat wins over nested",
			body:    `{"zip":"111","address":{"zip":"222"}}`,
			column:  constant.ColumnZip,
			want:    model.Field{Path: "zip", Present: true, Value: strPtr("111")},
			present: true,
		},
		{
			name:    "success: null flat falls back to nested value",
			body:    `{"geo_lat":null,"address":{"geo":{"lat":"-37.3159"}}}`,
			column:  constant.ColumnGeoLat,
			want:    model.Field{Path: "address.geo.lat", Present: true, Value: strPtr("-37.3159")},
			present: true,
		},
		{
			name:    "success: numeric geo coerced to string",
			body:    `{"address":{"geo":{"lng":81.1496}}}`,
			column:  constant.ColumnGeoLng,
			want:    model.Field{Path: "address.geo.lng", Present: true, Value: strPtr("81.1496")},
			present: true,
		},
		{
			name:    "success: zero coordinate kept",
			body:    `{"address":{"geo":{"lat":0}}}`,
			column:  constant.ColumnGeoLat,
			want:    model.Field{Path: "address.geo.lat", Present: true, Value: strPtr("0")},
			present: true,
		},
		{
			name:    "success: malformed geo passes through",
			body:    `{"geo_lat":"north"}`,
			column:  constant.ColumnGeoLat,
			want:    model.Field{Path: "geo_lat", Present: true, Value: strPtr("north")},
			present: true,
		},
		{
			name:    "success: text trimmed",
			body:    `{"name":"  Leanne Graham "}`,
			column:  constant.ColumnName,
			want:    model.Field{Path: "name", Present: true, Value: strPtr("Leanne Graham")},
			present: true,
		},
		{
			name:    "success: explicit null",
			body:    `{"company":null}`,
			column:  constant.ColumnCompany,
			want:    model.Field{Path: "company", Present: true},
			present: true,
		},
		{
			name:    "success: null address nulls nested fields",
			body:    `{"address":null}`,
			column:  constant.ColumnStreet,
			want:    model.Field{Path: "address.street", Present: true},
			present: true,
		},
		{
			name:    "error: object value flagged",
			body:    `{"name":{"first":"Leanne"}}`,
			column:  constant.ColumnName,
			want:    model.Field{Path: "name", Present: true, WrongType: true},
			present: true,
		},
		{
			name:   "success: absent field",
			body:   `{"name":"Leanne"}`,
			column: constant.ColumnCompany,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			in := mapper.Resolve(decode(t, tt.body))
			got, ok := in[tt.column]
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToEntity(t *testing.T) {
	in := mapper.Resolve(decode(t, `{"name":"A","email":"a@x.com","phone":"+1 555 0100","address":{"street":"Main","geo":{"lat":1.5}}}`))

	got := mapper.ToEntity(in)

	assert.Equal(t, "A", got.Name)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, strPtr("+1 555 0100"), got.Phone)
	assert.Equal(t, strPtr("Main"), got.Street)
	assert.Equal(t, strPtr("1.5"), got.GeoLat)
	assert.Nil(t, got.Company)
	assert.Nil(t, got.City)
	assert.Nil(t, got.Zip)
	assert.Nil(t, got.GeoLng)
}

func TestToPatch(t *testing.T) {
	tests := []struct {
		name string
		body string
		want model.UserPatch
	}{
		{
			name: "success: omitted fields are not in the patch",
			body: `{"name":"Ervin Howell"}`,
			want: model.UserPatch{{Column: constant.ColumnName, Value: strPtr("Ervin Howell")}},
		},
		{
			name: "success: explicit null is written as null",
			body: `{"company":null}`,
			want: model.UserPatch{{Column: constant.ColumnCompany, Value: nil}},
		},
		{
			name: "success: rule order regardless of input order",
			body: `{"address":{"geo":{"lng":"1"}},"email":"e@x.com","geo_lat":"2"}`,
			want: model.UserPatch{
				{Column: constant.ColumnEmail, Value: strPtr("e@x.com")},
				{Column: constant.ColumnGeoLat, Value: strPtr("2")},
				{Column: constant.ColumnGeoLng, Value: strPtr("1")},
			},
		},
		{
			name: "success: empty body gives empty patch",
			body: `{}`,
			want: model.UserPatch{},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := mapper.ToPatch(mapper.Resolve(decode(t, tt.body)))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToWire(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	t.Run("success: missing address parts default to empty string", func(t *testing.T) {
		got := mapper.ToWire(&model.UserEntity{ID: 7, Name: "A", Email: "a@x.com", CreatedAt: created})

		assert.Equal(t, model.Address{Geo: model.Geo{}}, got.Address)
		assert.Equal(t, created, got.UpdatedAt)

		raw, err := json.Marshal(got)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"address":{"street":"","city":"","zip":"","geo":{"lat":"","lng":""}}`)
	})

	t.Run("success: flat columns nested under address", func(t *testing.T) {
		got := mapper.ToWire(&model.UserEntity{
			ID:        1,
			Name:      "Leanne Graham",
			Email:     "sincere@april.biz",
			Company:   strPtr("Romaguera-Crona"),
			Street:    strPtr("Kulas Light"),
			City:      strPtr("Gwenborough"),
			Zip:       strPtr("92998-3874"),
			GeoLat:    strPtr("-37.3159"),
			GeoLng:    strPtr("81.1496"),
			CreatedAt: created,
			UpdatedAt: &updated,
		})

		assert.Equal(t, model.Address{
			Street: "Kulas Light",
			City:   "Gwenborough",
			Zip:    "92998-3874",
			Geo:    model.Geo{Lat: "-37.3159", Lng: "81.1496"},
		}, got.Address)
		assert.Equal(t, updated, got.UpdatedAt)
	})

	t.Run("success: empty list is not nil", func(t *testing.T) {
		got := mapper.ToWireList(nil)
		require.NotNil(t, got)
		assert.Len(t, got, 0)
	})
}
