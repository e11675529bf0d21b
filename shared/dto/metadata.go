package dto

import (
	"studio/shared/constant"
	"studio/shared/model"
	"studio/shared/timezone"
)

// Metadata is the audit trail of a row, rendered in studio time.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedAt string `json:"modified_at"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	*m = Metadata{
		CreatedAt:  timezone.Format(source.CreatedAt, constant.DateFormat),
		CreatedBy:  source.CreatedBy,
		ModifiedAt: timezone.Format(source.ModifiedAt, constant.DateFormat),
		ModifiedBy: source.ModifiedBy,
	}
}
