package model

import "loft/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldBuildingID = "building_id"
	FieldMemberID   = "member_id"
	FieldName       = "name"
	FieldFloor      = "floor"
	FieldArea       = "area"
	FieldUsage      = "usage"
	FieldRating     = "rating"
	FieldStatus     = "status"
)

const (
	UsageOffice      = "OFFICE"
	UsageRetail      = "RETAIL"
	UsageResidential = "RESIDENTIAL"
	UsageWarehouse   = "WAREHOUSE"
)

type Room struct {
	ID         string  `db:"id"`
	BuildingID string  `db:"building_id"`
	MemberID   string  `db:"member_id"`
	Name       string  `db:"name"`
	Floor      string  `db:"floor"`
	Area       float64 `db:"area"`
	Usage      string  `db:"usage"`
	Rating     string  `db:"rating"`
	Status     string  `db:"status"`
	model.Metadata
}
