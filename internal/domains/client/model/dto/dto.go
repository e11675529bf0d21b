package dto

import (
	"strings"

	"studio/internal/domains/client/model"
	gModel "studio/shared/model"
	"studio/shared/timezone"

	"github.com/google/uuid"
)

// ResolveRequest identifies a client by phone when ByPhone is set, by login otherwise.
type ResolveRequest struct {
	UserID  string
	Name    string
	Phone   string
	Email   string
	ByPhone bool
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	return &value
}

func (r ResolveRequest) ToModel(actor string) model.Client {
	client := model.Client{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(r.Name),
		Phone:    optional(r.Phone),
		Email:    optional(r.Email),
		Active:   true,
		Metadata: gModel.NewMetadata(actor, timezone.Now()),
	}

	if !r.ByPhone {
		client.UserID = optional(r.UserID)
	}

	if client.Name == "" {
		client.Name = client.PhoneNumber()
	}

	return client
}

type ClientResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

func (c *ClientResponse) FromModel(model model.Client) {
	c.ID = model.ID
	c.Name = model.Name
	c.Phone = model.PhoneNumber()
}
