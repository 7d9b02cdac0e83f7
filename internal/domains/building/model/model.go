package model

import "loft/shared/model"

const (
	TableName  = "buildings"
	EntityName = "building"

	FieldID      = "id"
	FieldName    = "name"
	FieldAddress = "address"
	FieldZipCode = "zip_code"
	FieldStatus  = "status"
)

type Building struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Address string `db:"address"`
	ZipCode string `db:"zip_code"`
	Status  string `db:"status"`
	model.Metadata
}
