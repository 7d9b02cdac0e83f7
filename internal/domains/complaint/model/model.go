package model

import "loft/shared/model"

const (
	TableName  = "complaints"
	EntityName = "complaint"

	FieldID               = "id"
	FieldRoomID           = "room_id"
	FieldMemberID         = "member_id"
	FieldMessage          = "complaint_message"
	FieldAttachment       = "attachment"
	FieldComplaintStatus  = "complaint_status"
	FieldCompletedMessage = "completed_message"
	FieldStatus           = "status"
)

const (
	ComplaintStatusPending    = "PENDING"
	ComplaintStatusInProgress = "IN_PROGRESS"
	ComplaintStatusCompleted  = "COMPLETED"
	ComplaintStatusRejected   = "REJECTED"
)

type Complaint struct {
	ID               string `db:"id"`
	RoomID           string `db:"room_id"`
	MemberID         string `db:"member_id"`
	Message          string `db:"complaint_message"`
	Attachment       string `db:"attachment"`
	ComplaintStatus  string `db:"complaint_status"`
	CompletedMessage string `db:"completed_message"`
	Status           string `db:"status"`
	model.Metadata
}

// IsResolvable reports whether the complaint still accepts a
// completion or rejection.
func (c *Complaint) IsResolvable() bool {
	return c.ComplaintStatus == ComplaintStatusPending || c.ComplaintStatus == ComplaintStatusInProgress
}

// IsPossibleToDelete reports whether the submitter may still withdraw
// the complaint.
func (c *Complaint) IsPossibleToDelete() bool {
	return c.ComplaintStatus == ComplaintStatusPending
}
