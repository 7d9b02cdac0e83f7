package building

import (
	"net/http"

	"loft/infras/otel"
	"loft/internal/domains/building/model"
	"loft/internal/domains/building/model/dto"
	"loft/internal/domains/building/service"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	"loft/shared/validator"
	"loft/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Building
	otel    otel.Otel
}

func New(service service.Building, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Routes are registered flat so the nested room routes can share the
// /buildings prefix without mounting a subrouter over it.
func (handler *Handler) Router(r chi.Router) {
	r.Post("/buildings", handler.CreateBuilding)
	r.Get("/buildings", handler.GetBuildings)
	r.Get("/buildings/{id}", handler.GetBuilding)
	r.Put("/buildings/{id}", handler.UpdateBuilding)
	r.Delete("/buildings/{id}", handler.DeleteBuilding)
}

// CreateBuilding registers a new building.
// @Summary Create a building
// @Description Register a new building with the provided details.
// @Tags Building
// @Accept json
// @Produce json
// @Param request body dto.CreateBuildingRequest true "Create Building Request"
// @Success 201 {object} response.Message "Building created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/buildings [post]
// @Security BearerAuth
func (handler *Handler) CreateBuilding(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBuilding")
	defer scope.End()

	req := dto.CreateBuildingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create building")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Building created successfully")

	response.WithMessage(w, http.StatusCreated, "Building created successfully")
}

// GetBuildings retrieves all buildings based on query parameters.
// @Summary Get all buildings
// @Description Retrieve all buildings with optional filtering and pagination.
// @Tags Building
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param zip_code query string false "Filter by zip code"
// @Success 200 {object} response.Data[dto.BuildingResponse] "List of buildings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/buildings [get]
// @Security BearerAuth
func (handler *Handler) GetBuildings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBuildings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
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

	if zipCode := r.URL.Query().Get(model.FieldZipCode); zipCode != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldZipCode,
			Operator: gDto.FilterOperatorEq,
			Value:    zipCode,
			Table:    model.TableName,
		})
	}

	buildings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get buildings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Buildings retrieved successfully")

	response.WithJSON(w, http.StatusOK, buildings)
}

// GetBuilding retrieves a building by ID.
// @Summary Get a building
// @Description Retrieve a building by its ID.
// @Tags Building
// @Accept json
// @Produce json
// @Param id path string true "Building ID"
// @Success 200 {object} dto.BuildingResponse "Building details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/buildings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBuilding(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBuilding")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	building, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get building")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Building retrieved successfully")

	response.WithJSON(w, http.StatusOK, building)
}

// UpdateBuilding updates a building by ID.
// @Summary Update a building
// @Description Update a building's details by its ID.
// @Tags Building
// @Accept json
// @Produce json
// @Param id path string true "Building ID"
// @Param request body dto.UpdateBuildingRequest true "Update Building Request"
// @Success 200 {object} response.Message "Building updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/buildings/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateBuilding(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBuilding")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBuildingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update building")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Building updated successfully")

	response.WithMessage(w, http.StatusOK, "Building updated successfully")
}

// DeleteBuilding unregisters a building by ID.
// @Summary Delete a building
// @Description Unregister a building by its ID.
// @Tags Building
// @Accept json
// @Produce json
// @Param id path string true "Building ID"
// @Success 200 {object} response.Message "Building deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/buildings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBuilding(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBuilding")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete building")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Building deleted successfully")

	response.WithMessage(w, http.StatusOK, "Building deleted successfully")
}
