package dto

import (
	"loft/internal/domains/score/model"
	"loft/shared"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	gModel "loft/shared/model"
	"loft/shared/timezone"

	"github.com/google/uuid"
)

type GenerateScoresRequest struct {
	BuildingID string `json:"building_id" validate:"required,uuid4"`
	RoomID     string `json:"room_id"     validate:"required,uuid4"`
	RatingType string `json:"rating_type" validate:"required,oneof=FACILITY MANAGEMENT"`
}

// NewScore builds the empty evaluation inserted for an eligible member.
func NewScore(roomID, memberID, ratingType, actor string) model.Score {
	now := timezone.Now()

	return model.Score{
		ID:         uuid.NewString(),
		RoomID:     roomID,
		MemberID:   memberID,
		RatingType: ratingType,
		Score:      0,
		Comment:    constant.Empty,
		Bookmark:   false,
		Status:     constant.StatusRegister,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

const (
	GenerateOutcomeCreated = "CREATED"
	GenerateOutcomeSkipped = "SKIPPED"
	GenerateOutcomeFailed  = "FAILED"
)

// MemberOutcome records what happened for one member during a
// generation pass.
type MemberOutcome struct {
	MemberID string `json:"member_id"`
	Outcome  string `json:"outcome"`
	Reason   string `json:"reason,omitempty"`
}

type GenerateScoresResponse struct {
	RoomID     string          `json:"room_id"`
	RatingType string          `json:"rating_type"`
	Created    int             `json:"created"`
	Skipped    int             `json:"skipped"`
	Failed     int             `json:"failed"`
	Outcomes   []MemberOutcome `json:"outcomes"`
}

type UpdateScoreRequest struct {
	Score   int    `json:"score"   validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

type UpdateBookmarkRequest struct {
	Bookmark *bool `json:"bookmark" validate:"required"`
}

type SearchScoresRequest struct {
	BuildingID string `validate:"required,uuid4"`
	RoomID     string `validate:"required,uuid4"`
	RatingType string `validate:"required,oneof=FACILITY MANAGEMENT"`
	From       string `validate:"omitempty,datetime=2006-01-02"`
	To         string `validate:"omitempty,datetime=2006-01-02"`
	Bookmark   *bool
	Keyword    string `validate:"omitempty,max=100"`
}

type ScoreResponse struct {
	ID         string `json:"id"`
	RoomID     string `json:"room_id"`
	MemberID   string `json:"member_id"`
	RatingType string `json:"rating_type"`
	Score      int    `json:"score"`
	Comment    string `json:"comment"`
	Bookmark   bool   `json:"bookmark"`
	Status     string `json:"status"`
	Completed  bool   `json:"completed"`
	gDto.Metadata
}

func (r *ScoreResponse) FromModel(model model.Score) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.MemberID = model.MemberID
	r.RatingType = model.RatingType
	r.Score = model.Score
	r.Comment = model.Comment
	r.Bookmark = model.Bookmark
	r.Status = model.Status
	r.Completed = model.IsCompleted()
	r.Metadata.FromModel(model.Metadata)
}

type GetScoresResponse struct {
	Scores    []ScoreResponse `json:"scores"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetScoresResponse) FromModels(models []model.Score, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Scores = make([]ScoreResponse, len(models))
	for i, mod := range models {
		r.Scores[i].FromModel(mod)
	}
}

// GeneratedEvent is the payload published after a generation pass.
type GeneratedEvent struct {
	RoomID     string `json:"room_id"`
	RatingType string `json:"rating_type"`
	Created    int    `json:"created"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
}
