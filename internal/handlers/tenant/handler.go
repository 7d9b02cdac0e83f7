package tenant

import (
	"net/http"

	"loft/infras/otel"
	"loft/internal/domains/tenant/model"
	"loft/internal/domains/tenant/model/dto"
	"loft/internal/domains/tenant/service"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	"loft/shared/validator"
	"loft/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Tenant
	otel    otel.Otel
}

func New(service service.Tenant, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/tenants", func(r chi.Router) {
		r.Post("/", handler.CreateTenant)
		r.Get("/", handler.GetTenants)
		r.Get("/{id}", handler.GetTenant)
		r.Put("/{id}", handler.UpdateTenant)
		r.Delete("/{id}", handler.DeleteTenant)
	})
}

// CreateTenant registers a new tenant company.
// @Summary Create a tenant
// @Description Register a new tenant with the provided details.
// @Tags Tenant
// @Accept json
// @Produce json
// @Param request body dto.CreateTenantRequest true "Create Tenant Request"
// @Success 201 {object} response.Message "Tenant created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tenants [post]
// @Security BearerAuth
func (handler *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTenant")
	defer scope.End()

	req := dto.CreateTenantRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create tenant")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tenant created successfully")

	response.WithMessage(w, http.StatusCreated, "Tenant created successfully")
}

// GetTenants retrieves all tenants based on query parameters.
// @Summary Get all tenants
// @Description Retrieve all tenants with optional filtering and pagination.
// @Tags Tenant
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param company_number query string false "Filter by company number"
// @Success 200 {object} response.Data[dto.TenantResponse] "List of tenants"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tenants [get]
// @Security BearerAuth
func (handler *Handler) GetTenants(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTenants")
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

	if companyNumber := r.URL.Query().Get(model.FieldCompanyNumber); companyNumber != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCompanyNumber,
			Operator: gDto.FilterOperatorEq,
			Value:    companyNumber,
			Table:    model.TableName,
		})
	}

	tenants, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tenants")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tenants retrieved successfully")

	response.WithJSON(w, http.StatusOK, tenants)
}

// GetTenant retrieves a tenant by ID.
// @Summary Get a tenant
// @Description Retrieve a tenant by its ID.
// @Tags Tenant
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse "Tenant details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tenants/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetTenant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTenant")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	tenant, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tenant")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tenant retrieved successfully")

	response.WithJSON(w, http.StatusOK, tenant)
}

// UpdateTenant updates a tenant by ID.
// @Summary Update a tenant
// @Description Update a tenant's details by its ID.
// @Tags Tenant
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Param request body dto.UpdateTenantRequest true "Update Tenant Request"
// @Success 200 {object} response.Message "Tenant updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tenants/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTenant")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTenantRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update tenant")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tenant updated successfully")

	response.WithMessage(w, http.StatusOK, "Tenant updated successfully")
}

// DeleteTenant unregisters a tenant by ID.
// @Summary Delete a tenant
// @Description Unregister a tenant by its ID.
// @Tags Tenant
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} response.Message "Tenant deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tenants/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTenant")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete tenant")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tenant deleted successfully")

	response.WithMessage(w, http.StatusOK, "Tenant deleted successfully")
}
