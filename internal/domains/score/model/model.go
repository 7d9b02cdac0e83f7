package model

import "loft/shared/model"

const (
	TableName  = "scores"
	EntityName = "score"

	FieldID         = "id"
	FieldRoomID     = "room_id"
	FieldMemberID   = "member_id"
	FieldRatingType = "rating_type"
	FieldScore      = "score"
	FieldComment    = "comment"
	FieldBookmark   = "bookmark"
	FieldStatus     = "status"
)

const (
	RatingTypeFacility   = "FACILITY"
	RatingTypeManagement = "MANAGEMENT"
)

type Score struct {
	ID         string `db:"id"`
	RoomID     string `db:"room_id"`
	MemberID   string `db:"member_id"`
	RatingType string `db:"rating_type"`
	Score      int    `db:"score"`
	Comment    string `db:"comment"`
	Bookmark   bool   `db:"bookmark"`
	Status     string `db:"status"`
	model.Metadata
}

// IsCompleted reports whether the evaluation has been submitted. A
// freshly generated score carries 0 and untouched metadata; either a
// positive score or a later modification marks it completed.
func (s *Score) IsCompleted() bool {
	return s.Score > 0 || !s.IsUntouched()
}
