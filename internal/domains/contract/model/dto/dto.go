package dto

import (
	"time"

	"loft/internal/domains/contract/model"
	"loft/shared"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	gModel "loft/shared/model"
	"loft/shared/timezone"

	"github.com/google/uuid"
)

type CreateContractRequest struct {
	TenantID  string `json:"tenant_id"  validate:"required,uuid4"`
	Deposit   int64  `json:"deposit"    validate:"omitempty,min=0"`
	RentFee   int64  `json:"rent_fee"   validate:"omitempty,min=0"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
}

func (c *CreateContractRequest) ToModel(roomID, actor string) (model.Contract, error) {
	startDate, err := timezone.Parse(constant.DateOnlyFormat, c.StartDate)
	if err != nil {
		return model.Contract{}, err
	}

	endDate, err := timezone.Parse(constant.DateOnlyFormat, c.EndDate)
	if err != nil {
		return model.Contract{}, err
	}

	return model.Contract{
		ID:             uuid.NewString(),
		RoomID:         roomID,
		TenantID:       c.TenantID,
		Deposit:        c.Deposit,
		RentFee:        c.RentFee,
		StartDate:      startDate,
		EndDate:        endDate,
		ContractStatus: model.ContractStatusPending,
		Status:         constant.StatusRegister,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}, nil
}

type ContractResponse struct {
	ID             string    `json:"id"`
	RoomID         string    `json:"room_id"`
	TenantID       string    `json:"tenant_id"`
	Deposit        int64     `json:"deposit"`
	RentFee        int64     `json:"rent_fee"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	ContractStatus string    `json:"contract_status"`
	Status         string    `json:"status"`
	gDto.Metadata
}

func (r *ContractResponse) FromModel(model model.Contract) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.TenantID = model.TenantID
	r.Deposit = model.Deposit
	r.RentFee = model.RentFee
	r.StartDate = model.StartDate
	r.EndDate = model.EndDate
	r.ContractStatus = model.ContractStatus
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetContractsResponse struct {
	Contracts []ContractResponse `json:"contracts"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetContractsResponse) FromModels(models []model.Contract, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Contracts = make([]ContractResponse, len(models))
	for i, mod := range models {
		r.Contracts[i].FromModel(mod)
	}
}

// StatusChangedEvent is the payload published on every contract status
// transition, including batch rollover.
type StatusChangedEvent struct {
	ContractID string    `json:"contract_id"`
	RoomID     string    `json:"room_id"`
	TenantID   string    `json:"tenant_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedBy  string    `json:"changed_by"`
	ChangedAt  time.Time `json:"changed_at"`
}
