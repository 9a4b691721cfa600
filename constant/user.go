package constant

// users table columns
const (
	ColumnName    = "name"
	ColumnEmail   = "email"
	ColumnPhone   = "phone"
	ColumnCompany = "company"
	ColumnStreet  = "street"
	ColumnCity    = "city"
	ColumnZip     = "zip"
	ColumnGeoLat  = "geo_lat"
	ColumnGeoLng  = "geo_lng"
)

// WritableColumns lists every users column a request may write, in storage order.
var WritableColumns = []string{
	ColumnName,
	ColumnEmail,
	ColumnPhone,
	ColumnCompany,
	ColumnStreet,
	ColumnCity,
	ColumnZip,
	ColumnGeoLat,
	ColumnGeoLng,
}

type UserEvent string

const (
	UserEventCreated UserEvent = "user.created"
	UserEventUpdated UserEvent = "user.updated"
	UserEventDeleted UserEvent = "user.deleted"
)
