package member

import (
	"net/http"

	"loft/infras/otel"
	"loft/internal/domains/member/model"
	"loft/internal/domains/member/model/dto"
	"loft/internal/domains/member/service"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	"loft/shared/validator"
	"loft/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Member
	otel    otel.Otel
}

func New(service service.Member, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/members", func(r chi.Router) {
		r.Get("/", handler.GetMembers)
		r.Get("/me", handler.GetMe)
		r.Get("/{id}", handler.GetMember)
		r.Put("/{id}", handler.UpdateMember)
		r.Delete("/{id}", handler.DeleteMember)
	})
}

// GetMembers retrieves all members based on query parameters.
// @Summary Get all members
// @Description Retrieve all members with optional filtering and pagination.
// @Tags Member
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param role query string false "Filter by role"
// @Param tenant_id query string false "Filter by tenant"
// @Success 200 {object} response.Data[dto.MemberResponse] "List of members"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/members [get]
// @Security BearerAuth
func (handler *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMembers")
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

	if role := r.URL.Query().Get(model.FieldRole); role != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRole,
			Operator: gDto.FilterOperatorEq,
			Value:    role,
			Table:    model.TableName,
		})
	}

	if tenantID := r.URL.Query().Get(model.FieldTenantID); tenantID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTenantID,
			Operator: gDto.FilterOperatorEq,
			Value:    tenantID,
			Table:    model.TableName,
		})
	}

	members, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get members")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Members retrieved successfully")

	response.WithJSON(w, http.StatusOK, members)
}

// GetMe retrieves the authenticated member's profile.
// @Summary Get own profile
// @Description Retrieve the profile of the authenticated member.
// @Tags Member
// @Accept json
// @Produce json
// @Success 200 {object} dto.MemberResponse "Member profile"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/members/me [get]
// @Security BearerAuth
func (handler *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMe")
	defer scope.End()

	memberID, _ := ctx.Value(constant.ContextKeyMemberID).(string)

	member, err := handler.service.Get(ctx, memberID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get member profile")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Member profile retrieved successfully")

	response.WithJSON(w, http.StatusOK, member)
}

// GetMember retrieves a member by ID.
// @Summary Get a member
// @Description Retrieve a member by its ID.
// @Tags Member
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} dto.MemberResponse "Member details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/members/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMember")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	member, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get member")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Member retrieved successfully")

	response.WithJSON(w, http.StatusOK, member)
}

// UpdateMember updates a member by ID.
// @Summary Update a member
// @Description Update a member's profile by its ID.
// @Tags Member
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param request body dto.UpdateMemberRequest true "Update Member Request"
// @Success 200 {object} response.Message "Member updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/members/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMember")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateMemberRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update member")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Member updated successfully")

	response.WithMessage(w, http.StatusOK, "Member updated successfully")
}

// DeleteMember unregisters a member by ID.
// @Summary Delete a member
// @Description Unregister a member by its ID.
// @Tags Member
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Message "Member deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/members/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMember")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete member")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Member deleted successfully")

	response.WithMessage(w, http.StatusOK, "Member deleted successfully")
}
