package dto

import (
	"mime/multipart"

	"loft/internal/domains/complaint/model"
	"loft/shared"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	gModel "loft/shared/model"
	"loft/shared/timezone"

	"github.com/google/uuid"
)

type CreateComplaintRequest struct {
	RoomID         string                `json:"room_id" validate:"required,uuid4"`
	Message        string                `json:"message" validate:"required,max=1000"`
	Attachment     *multipart.FileHeader `json:"-"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
	AttachmentFile multipart.File        `json:"-"`
}

func (c *CreateComplaintRequest) ToModel(actor, attachmentURL string) model.Complaint {
	return model.Complaint{
		ID:              uuid.NewString(),
		RoomID:          c.RoomID,
		MemberID:        actor,
		Message:         c.Message,
		Attachment:      attachmentURL,
		ComplaintStatus: model.ComplaintStatusPending,
		Status:          constant.StatusRegister,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type ResolveComplaintRequest struct {
	Message string `json:"message" validate:"omitempty,max=1000"`
}

type ComplaintResponse struct {
	ID               string `json:"id"`
	RoomID           string `json:"room_id"`
	MemberID         string `json:"member_id"`
	Message          string `json:"message"`
	Attachment       string `json:"attachment,omitempty"`
	ComplaintStatus  string `json:"complaint_status"`
	CompletedMessage string `json:"completed_message,omitempty"`
	Status           string `json:"status"`
	Deletable        bool   `json:"deletable"`
	gDto.Metadata
}

func (r *ComplaintResponse) FromModel(model model.Complaint) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.MemberID = model.MemberID
	r.Message = model.Message
	r.Attachment = model.Attachment
	r.ComplaintStatus = model.ComplaintStatus
	r.CompletedMessage = model.CompletedMessage
	r.Status = model.Status
	r.Deletable = model.IsPossibleToDelete()
	r.Metadata.FromModel(model.Metadata)
}

type GetComplaintsResponse struct {
	Complaints []ComplaintResponse `json:"complaints"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetComplaintsResponse) FromModels(models []model.Complaint, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Complaints = make([]ComplaintResponse, len(models))
	for i, mod := range models {
		r.Complaints[i].FromModel(mod)
	}
}
