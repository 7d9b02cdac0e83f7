package model

import "loft/shared/model"

const (
	TableName  = "tenants"
	EntityName = "tenant"

	FieldID            = "id"
	FieldName          = "name"
	FieldCompanyNumber = "company_number"
	FieldStatus        = "status"
)

type Tenant struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	CompanyNumber string `db:"company_number"`
	Status        string `db:"status"`
	model.Metadata
}
