package dto

import (
	"loft/internal/domains/room/model"
	"loft/shared"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	gModel "loft/shared/model"
	"loft/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name   string  `json:"name"   validate:"required,max=100"`
	Floor  string  `json:"floor"  validate:"omitempty,max=10"`
	Area   float64 `json:"area"   validate:"omitempty,min=0"`
	Usage  string  `json:"usage"  validate:"required,oneof=OFFICE RETAIL RESIDENTIAL WAREHOUSE"`
	Rating string  `json:"rating" validate:"omitempty,max=20"`
}

func (c *CreateRoomRequest) ToModel(buildingID, actor string) model.Room {
	return model.Room{
		ID:         uuid.NewString(),
		BuildingID: buildingID,
		MemberID:   actor,
		Name:       c.Name,
		Floor:      c.Floor,
		Area:       c.Area,
		Usage:      c.Usage,
		Rating:     c.Rating,
		Status:     constant.StatusRegister,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateRoomRequest struct {
	Name   string   `db:"name"   json:"name"   validate:"omitempty,max=100"`
	Floor  string   `db:"floor"  json:"floor"  validate:"omitempty,max=10"`
	Area   *float64 `db:"area"   json:"area"   validate:"omitempty,min=0"`
	Usage  string   `db:"usage"  json:"usage"  validate:"omitempty,oneof=OFFICE RETAIL RESIDENTIAL WAREHOUSE"`
	Rating string   `db:"rating" json:"rating" validate:"omitempty,max=20"`
}

type RoomResponse struct {
	ID         string  `json:"id"`
	BuildingID string  `json:"building_id"`
	MemberID   string  `json:"member_id"`
	Name       string  `json:"name"`
	Floor      string  `json:"floor"`
	Area       float64 `json:"area"`
	Usage      string  `json:"usage"`
	Rating     string  `json:"rating"`
	Status     string  `json:"status"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.BuildingID = model.BuildingID
	r.MemberID = model.MemberID
	r.Name = model.Name
	r.Floor = model.Floor
	r.Area = model.Area
	r.Usage = model.Usage
	r.Rating = model.Rating
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
