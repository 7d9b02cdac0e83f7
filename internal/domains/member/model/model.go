package model

import "loft/shared/model"

const (
	TableName  = "members"
	EntityName = "member"

	FieldID       = "id"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
	FieldPhone    = "phone"
	FieldRole     = "role"
	FieldStatus   = "status"
	FieldTenantID = "tenant_id"
)

type Member struct {
	ID       string  `db:"id"`
	Email    string  `db:"email"`
	Password string  `db:"password"`
	Name     string  `db:"name"`
	Phone    string  `db:"phone"`
	Role     string  `db:"role"`
	Status   string  `db:"status"`
	TenantID *string `db:"tenant_id"`
	model.Metadata
}
