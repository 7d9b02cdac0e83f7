package model

import "time"

type Metadata struct {
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	ModifiedAt time.Time `db:"modified_at" json:"modified_at"`
	CreatedBy  string    `db:"created_by" json:"created_by"`
	ModifiedBy string    `db:"modified_by" json:"modified_by"`
}

// IsUntouched reports whether the row has never been modified since creation.
func (m Metadata) IsUntouched() bool {
	return m.CreatedAt.Equal(m.ModifiedAt)
}
