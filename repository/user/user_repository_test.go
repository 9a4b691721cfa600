package user

import (
	"testing"

	"github.com/muhammadheryan/contacts/constant"
	"github.com/muhammadheryan/contacts/model"
	"github.com/stretchr/testify/assert"
)

func TestLikePattern(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{name: "success: lower-cased", fragment: "Romaguera", want: "%romaguera%"},
		{name: "success: percent escaped", fragment: "100%", want: `%100\%%`},
		{name: "success: underscore escaped", fragment: "a_b", want: `%a\_b%`},
		{name: "success: backslash escaped", fragment: `a\b`, want: `%a\\b%`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, likePattern(tt.fragment))
		})
	}
}

func TestCheckPatch(t *testing.T) {
	ok := model.UserPatch{
		{Column: constant.ColumnCompany},
		{Column: constant.ColumnGeoLng},
	}
	assert.NoError(t, checkPatch(ok))

	bad := model.UserPatch{{Column: "id"}}
	assert.Error(t, checkPatch(bad))

	injected := model.UserPatch{{Column: "name = 'x', email"}}
	assert.Error(t, checkPatch(injected))
}

func TestMySQLUpdateQuery(t *testing.T) {
	city := "Gwenborough"
	query, args := mysqlUpdateQuery(9, model.UserPatch{
		{Column: constant.ColumnCity, Value: &city},
		{Column: constant.ColumnCompany, Value: nil},
	})

	assert.Equal(t, "UPDATE users SET city = ?, company = ?, updated_at = UTC_TIMESTAMP(3) WHERE id = ?", query)
	assert.Equal(t, []any{&city, (*string)(nil), uint64(9)}, args)
	assert.NotContains(t, query, "NOW(")
	assert.NotContains(t, insertUserQuery, "NOW(")
}
