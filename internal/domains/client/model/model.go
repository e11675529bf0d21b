package model

import "studio/shared/model"

const (
	TableName  = "clients"
	EntityName = "client"

	FieldID     = "id"
	FieldUserID = "user_id"
	FieldName   = "name"
	FieldPhone  = "phone"
	FieldEmail  = "email"
	FieldActive = "active"
)

// Client is the person a booking is for. UserID links it to a login; walk-in clients only have a phone.
type Client struct {
	ID     string  `db:"id"`
	UserID *string `db:"user_id"`
	Name   string  `db:"name"`
	Phone  *string `db:"phone"`
	Email  *string `db:"email"`
	Notes  string  `db:"notes"`
	Active bool    `db:"active"`
	model.Metadata
}

func (c Client) PhoneNumber() string {
	if c.Phone == nil {
		return ""
	}

	return *c.Phone
}
