package model

import "time"

// UserEntity represents the users table entity (storage shape)
type UserEntity struct {
	ID        uint64     `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Email     string     `db:"email" json:"email"`
	Phone     *string    `db:"phone" json:"phone"`
	Company   *string    `db:"company" json:"company"`
	Street    *string    `db:"street" json:"street"`
	City      *string    `db:"city" json:"city"`
	Zip       *string    `db:"zip" json:"zip"`
	GeoLat    *string    `db:"geo_lat" json:"geo_lat"`
	GeoLng    *string    `db:"geo_lng" json:"geo_lng"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// ColumnValue is a single column assignment; a nil Value writes NULL.
type ColumnValue struct {
	Column string
	Value  *string
}

// UserPatch is the partial write-set of an update, in column order.
// Columns missing from the patch are left untouched.
type UserPatch []ColumnValue

// Columns returns the patched column names.
func (p UserPatch) Columns() []string {
	cols := make([]string, 0, len(p))
	for _, cv := range p {
		cols = append(cols, cv.Column)
	}
	return cols
}

// User is the wire shape returned to clients
type User struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Company   *string   `json:"company"`
	Address   Address   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
	Geo    Geo    `json:"geo"`
}

type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// UserPayload is a decoded create/update request body. Numbers are kept as json.Number.
type UserPayload map[string]any

// Field is one resolved storage column taken from a UserPayload.
type Field struct {
	// Path is the wire path that supplied the value, e.g. "address.geo.lat".
	Path    string
	Present bool
	// Value is nil when the field was explicitly null.
	Value *string
	// WrongType is set when the payload carried an object or array.
	WrongType bool
}

// UserInput holds resolved fields keyed by storage column.
type UserInput map[string]Field

// Get returns the resolved field for column, or an absent Field.
func (in UserInput) Get(column string) Field {
	f, ok := in[column]
	if !ok {
		return Field{}
	}
	return f
}

// FieldError describes one violated validation rule
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// UserListResponse wraps list and search results for documentation purposes
type UserListResponse struct {
	Success bool   `json:"success"`
	Data    []User `json:"data"`
}

// UserResponse wraps a single user for documentation purposes
type UserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    User   `json:"data"`
}

// UserRequest documents the accepted create/update body. Address fields may also be sent flat
// (street, city, zip, geo_lat, geo_lng); flat fields take precedence.
type UserRequest struct {
	Name    string  `json:"name" example:"Leanne Graham"`
	Email   string  `json:"email" example:"sincere@april.biz"`
	Phone   string  `json:"phone" example:"+1 555 0100"`
	Company *string `json:"company" example:"Romaguera-Crona"`
	Address Address `json:"address"`
}
