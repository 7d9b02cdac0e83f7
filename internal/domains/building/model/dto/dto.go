package dto

import (
	"loft/internal/domains/building/model"
	"loft/shared"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	gModel "loft/shared/model"
	"loft/shared/timezone"

	"github.com/google/uuid"
)

type CreateBuildingRequest struct {
	Name    string `json:"name"     validate:"required,max=100"`
	Address string `json:"address"  validate:"required,max=200"`
	ZipCode string `json:"zip_code" validate:"omitempty,max=16"`
}

func (c *CreateBuildingRequest) ToModel(actor string) model.Building {
	return model.Building{
		ID:      uuid.NewString(),
		Name:    c.Name,
		Address: c.Address,
		ZipCode: c.ZipCode,
		Status:  constant.StatusRegister,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateBuildingRequest struct {
	Name    string `db:"name"     json:"name"     validate:"omitempty,max=100"`
	Address string `db:"address"  json:"address"  validate:"omitempty,max=200"`
	ZipCode string `db:"zip_code" json:"zip_code" validate:"omitempty,max=16"`
}

type BuildingResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	ZipCode string `json:"zip_code"`
	Status  string `json:"status"`
	gDto.Metadata
}

func (r *BuildingResponse) FromModel(model model.Building) {
	r.ID = model.ID
	r.Name = model.Name
	r.Address = model.Address
	r.ZipCode = model.ZipCode
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBuildingsResponse struct {
	Buildings []BuildingResponse `json:"buildings"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetBuildingsResponse) FromModels(models []model.Building, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Buildings = make([]BuildingResponse, len(models))
	for i, mod := range models {
		r.Buildings[i].FromModel(mod)
	}
}
