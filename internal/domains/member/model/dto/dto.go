package dto

import (
	"loft/internal/domains/member/model"
	"loft/shared"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	gModel "loft/shared/model"
	"loft/shared/timezone"

	"github.com/google/uuid"
)

type CreateMemberRequest struct {
	Email    string  `json:"email"     validate:"required,email,max=100"`
	Password string  `json:"password"  validate:"required,min=8,max=72"`
	Name     string  `json:"name"      validate:"required,max=100"`
	Phone    string  `json:"phone"     validate:"omitempty,max=20"`
	Role     string  `json:"role"      validate:"required,oneof=OWNER USER"`
	TenantID *string `json:"tenant_id" validate:"omitempty,uuid4"`
}

func (c *CreateMemberRequest) ToModel(actor, passwordHash string) model.Member {
	return model.Member{
		ID:       uuid.NewString(),
		Email:    c.Email,
		Password: passwordHash,
		Name:     c.Name,
		Phone:    c.Phone,
		Role:     c.Role,
		Status:   constant.StatusRegister,
		TenantID: c.TenantID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateMemberRequest struct {
	Name     string  `db:"name"      json:"name"      validate:"omitempty,max=100"`
	Phone    string  `db:"phone"     json:"phone"     validate:"omitempty,max=20"`
	TenantID *string `db:"tenant_id" json:"tenant_id" validate:"omitempty,uuid4"`
}

type MemberResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Role     string  `json:"role"`
	Status   string  `json:"status"`
	TenantID *string `json:"tenant_id,omitempty"`
	gDto.Metadata
}

func (r *MemberResponse) FromModel(model model.Member) {
	r.ID = model.ID
	r.Email = model.Email
	r.Name = model.Name
	r.Phone = model.Phone
	r.Role = model.Role
	r.Status = model.Status
	r.TenantID = model.TenantID
	r.Metadata.FromModel(model.Metadata)
}

type GetMembersResponse struct {
	Members   []MemberResponse `json:"members"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetMembersResponse) FromModels(models []model.Member, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Members = make([]MemberResponse, len(models))
	for i, mod := range models {
		r.Members[i].FromModel(mod)
	}
}
