package model

import (
	"time"

	"loft/shared/model"
)

const (
	TableName  = "contracts"
	EntityName = "contract"

	FieldID             = "id"
	FieldRoomID         = "room_id"
	FieldTenantID       = "tenant_id"
	FieldDeposit        = "deposit"
	FieldRentFee        = "rent_fee"
	FieldStartDate      = "start_date"
	FieldEndDate        = "end_date"
	FieldContractStatus = "contract_status"
	FieldStatus         = "status"
)

const (
	ContractStatusPending    = "PENDING"
	ContractStatusInProgress = "IN_PROGRESS"
	ContractStatusCompleted  = "COMPLETED"
	ContractStatusCanceled   = "CANCELED"
)

type Contract struct {
	ID             string    `db:"id"`
	RoomID         string    `db:"room_id"`
	TenantID       string    `db:"tenant_id"`
	Deposit        int64     `db:"deposit"`
	RentFee        int64     `db:"rent_fee"`
	StartDate      time.Time `db:"start_date"`
	EndDate        time.Time `db:"end_date"`
	ContractStatus string    `db:"contract_status"`
	Status         string    `db:"status"`
	model.Metadata
}

// CanTransitionTo reports whether the contract may move to the target
// contract status.
func (c *Contract) CanTransitionTo(target string) bool {
	switch target {
	case ContractStatusInProgress:
		return c.ContractStatus == ContractStatusPending
	case ContractStatusCompleted:
		return c.ContractStatus == ContractStatusInProgress
	case ContractStatusCanceled:
		return c.ContractStatus == ContractStatusPending || c.ContractStatus == ContractStatusInProgress
	default:
		return false
	}
}
