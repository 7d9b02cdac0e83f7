package score

import (
	"net/http"

	"loft/infras/otel"
	"loft/internal/domains/score/model/dto"
	"loft/internal/domains/score/service"
	"loft/shared"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	"loft/shared/validator"
	"loft/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Score
	otel    otel.Otel
}

func New(service service.Score, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/scores", func(r chi.Router) {
		r.Post("/generate", handler.GenerateScores)
		r.Get("/", handler.SearchScores)
		r.Get("/me", handler.GetMyScores)
		r.Get("/{id}", handler.GetScore)
		r.Patch("/{id}", handler.UpdateScore)
		r.Patch("/{id}/bookmark", handler.UpdateBookmark)
	})
}

// GenerateScores creates an evaluation batch for a room's tenant members.
// @Summary Generate evaluations
// @Description Generate empty evaluations for every eligible member of the room's active tenant.
// @Tags Score
// @Accept json
// @Produce json
// @Param request body dto.GenerateScoresRequest true "Generate Scores Request"
// @Success 200 {object} dto.GenerateScoresResponse "Per-member generation outcomes"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/scores/generate [post]
// @Security BearerAuth
func (handler *Handler) GenerateScores(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GenerateScores")
	defer scope.End()

	req := dto.GenerateScoresRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Generate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to generate scores")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Scores generated successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// SearchScores retrieves completed evaluations for a room.
// @Summary Search evaluations
// @Description Search completed evaluations for a room the owner manages.
// @Tags Score
// @Accept json
// @Produce json
// @Param building_id query string true "Building ID"
// @Param room_id query string true "Room ID"
// @Param rating_type query string true "Rating type (FACILITY or MANAGEMENT)"
// @Param from query string false "Evaluated from date (YYYY-MM-DD)"
// @Param to query string false "Evaluated to date (YYYY-MM-DD)"
// @Param bookmark query boolean false "Filter by bookmark"
// @Param keyword query string false "Comment keyword"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} dto.GetScoresResponse "List of evaluations"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/scores [get]
// @Security BearerAuth
func (handler *Handler) SearchScores(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchScores")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	req := dto.SearchScoresRequest{
		BuildingID: r.URL.Query().Get("building_id"),
		RoomID:     r.URL.Query().Get("room_id"),
		RatingType: r.URL.Query().Get("rating_type"),
		From:       r.URL.Query().Get("from"),
		To:         r.URL.Query().Get("to"),
		Bookmark:   shared.ConvertStringToBool(r.URL.Query().Get("bookmark")),
		Keyword:    r.URL.Query().Get("keyword"),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	scores, err := handler.service.Search(ctx, req, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search scores")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Scores retrieved successfully")

	response.WithJSON(w, http.StatusOK, scores)
}

// GetMyScores retrieves the authenticated member's evaluations.
// @Summary Get own evaluations
// @Description Retrieve the evaluations assigned to the authenticated member.
// @Tags Score
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} dto.GetScoresResponse "List of evaluations"
// @Failure 500 {object} response.Error
// @Router /v1/scores/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyScores(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyScores")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	scores, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get own scores")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Scores retrieved successfully")

	response.WithJSON(w, http.StatusOK, scores)
}

// GetScore retrieves an evaluation by ID.
// @Summary Get an evaluation
// @Description Retrieve an evaluation by its ID.
// @Tags Score
// @Accept json
// @Produce json
// @Param id path string true "Score ID"
// @Success 200 {object} dto.ScoreResponse "Evaluation details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/scores/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetScore(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetScore")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	score, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get score")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Score retrieved successfully")

	response.WithJSON(w, http.StatusOK, score)
}

// UpdateScore submits an evaluation.
// @Summary Submit an evaluation
// @Description Submit the score and comment of an evaluation assigned to the authenticated member.
// @Tags Score
// @Accept json
// @Produce json
// @Param id path string true "Score ID"
// @Param request body dto.UpdateScoreRequest true "Update Score Request"
// @Success 200 {object} dto.ScoreResponse "Updated evaluation"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/scores/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateScore")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateScoreRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpdateScore(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update score")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Score updated successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateBookmark toggles the bookmark flag of an evaluation.
// @Summary Bookmark an evaluation
// @Description Set or clear the bookmark flag on an evaluation of an owned room.
// @Tags Score
// @Accept json
// @Produce json
// @Param id path string true "Score ID"
// @Param request body dto.UpdateBookmarkRequest true "Update Bookmark Request"
// @Success 200 {object} dto.ScoreResponse "Updated evaluation"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/scores/{id}/bookmark [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBookmark(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookmark")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBookmarkRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpdateBookmark(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update bookmark")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookmark updated successfully")

	response.WithJSON(w, http.StatusOK, res)
}
