package room

import (
	"net/http"

	"loft/infras/otel"
	"loft/internal/domains/room/model"
	"loft/internal/domains/room/model/dto"
	"loft/internal/domains/room/service"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	"loft/shared/validator"
	"loft/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Post("/buildings/{buildingId}/rooms", handler.CreateRoom)
	r.Get("/buildings/{buildingId}/rooms", handler.GetRooms)
	r.Get("/buildings/{buildingId}/rooms/{id}", handler.GetRoom)
	r.Put("/buildings/{buildingId}/rooms/{id}", handler.UpdateRoom)
	r.Delete("/buildings/{buildingId}/rooms/{id}", handler.DeleteRoom)
}

// CreateRoom registers a new room in a building.
// @Summary Create a room
// @Description Register a new room in the given building.
// @Tags Room
// @Accept json
// @Produce json
// @Param buildingId path string true "Building ID"
// @Param request body dto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} response.Message "Room created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/buildings/{buildingId}/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	buildingID := chi.URLParam(r, constant.RequestParamBuildingID)

	req := dto.CreateRoomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req, buildingID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room created successfully")

	response.WithMessage(w, http.StatusCreated, "Room created successfully")
}

// GetRooms retrieves all rooms in a building.
// @Summary Get all rooms
// @Description Retrieve all rooms in a building with optional filtering and pagination.
// @Tags Room
// @Accept json
// @Produce json
// @Param buildingId path string true "Building ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param usage query string false "Filter by usage"
// @Param floor query string false "Filter by floor"
// @Success 200 {object} response.Data[dto.RoomResponse] "List of rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/buildings/{buildingId}/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	buildingID := chi.URLParam(r, constant.RequestParamBuildingID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBuildingID,
				Operator: gDto.FilterOperatorEq,
				Value:    buildingID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.StatusRegister,
				Table:    model.TableName,
			},
		},
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if usage := r.URL.Query().Get(model.FieldUsage); usage != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldUsage,
			Operator: gDto.FilterOperatorEq,
			Value:    usage,
			Table:    model.TableName,
		})
	}

	if floor := r.URL.Query().Get(model.FieldFloor); floor != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldFloor,
			Operator: gDto.FilterOperatorEq,
			Value:    floor,
			Table:    model.TableName,
		})
	}

	rooms, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoom retrieves a room by ID.
// @Summary Get a room
// @Description Retrieve a room in a building by its ID.
// @Tags Room
// @Accept json
// @Produce json
// @Param buildingId path string true "Building ID"
// @Param id path string true "Room ID"
// @Success 200 {object} dto.RoomResponse "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/buildings/{buildingId}/rooms/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoom")
	defer scope.End()

	buildingID := chi.URLParam(r, constant.RequestParamBuildingID)
	id := chi.URLParam(r, constant.RequestParamID)

	room, err := handler.service.Get(ctx, buildingID, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room retrieved successfully")

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom updates a room by ID.
// @Summary Update a room
// @Description Update a room's details by its ID.
// @Tags Room
// @Accept json
// @Produce json
// @Param buildingId path string true "Building ID"
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Update Room Request"
// @Success 200 {object} response.Message "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/buildings/{buildingId}/rooms/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	buildingID := chi.URLParam(r, constant.RequestParamBuildingID)
	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateRoomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, buildingID, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room updated successfully")

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// DeleteRoom unregisters a room by ID.
// @Summary Delete a room
// @Description Unregister a room in a building by its ID.
// @Tags Room
// @Accept json
// @Produce json
// @Param buildingId path string true "Building ID"
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/buildings/{buildingId}/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	buildingID := chi.URLParam(r, constant.RequestParamBuildingID)
	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, buildingID, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room deleted successfully")

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}
