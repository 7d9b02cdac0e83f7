package dto

import (
	"loft/internal/domains/tenant/model"
	"loft/shared"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	gModel "loft/shared/model"
	"loft/shared/timezone"

	"github.com/google/uuid"
)

type CreateTenantRequest struct {
	Name          string `json:"name"           validate:"required,max=100"`
	CompanyNumber string `json:"company_number" validate:"omitempty,max=20"`
}

func (c *CreateTenantRequest) ToModel(actor string) model.Tenant {
	return model.Tenant{
		ID:            uuid.NewString(),
		Name:          c.Name,
		CompanyNumber: c.CompanyNumber,
		Status:        constant.StatusRegister,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateTenantRequest struct {
	Name          string `db:"name"           json:"name"           validate:"omitempty,max=100"`
	CompanyNumber string `db:"company_number" json:"company_number" validate:"omitempty,max=20"`
}

type TenantResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CompanyNumber string `json:"company_number"`
	Status        string `json:"status"`
	gDto.Metadata
}

func (r *TenantResponse) FromModel(model model.Tenant) {
	r.ID = model.ID
	r.Name = model.Name
	r.CompanyNumber = model.CompanyNumber
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetTenantsResponse struct {
	Tenants   []TenantResponse `json:"tenants"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetTenantsResponse) FromModels(models []model.Tenant, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tenants = make([]TenantResponse, len(models))
	for i, mod := range models {
		r.Tenants[i].FromModel(mod)
	}
}
