package complaint

import (
	"net/http"

	"loft/infras/otel"
	"loft/internal/domains/complaint/model"
	"loft/internal/domains/complaint/model/dto"
	"loft/internal/domains/complaint/service"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	"loft/shared/validator"
	"loft/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Complaint
	otel    otel.Otel
}

func New(service service.Complaint, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/complaints", func(r chi.Router) {
		r.Post("/", handler.CreateComplaint)
		r.Get("/", handler.GetComplaints)
		r.Get("/{id}", handler.GetComplaint)
		r.Delete("/{id}", handler.DeleteComplaint)
		r.Patch("/{id}/complete", handler.CompleteComplaint)
		r.Patch("/{id}/reject", handler.RejectComplaint)
	})
}

// CreateComplaint submits a new complaint with an optional attachment.
// @Summary Create a complaint
// @Description Submit a complaint for a room, optionally with an image attachment.
// @Tags Complaint
// @Accept multipart/form-data
// @Produce json
// @Param room_id formData string true "Room ID"
// @Param message formData string true "Complaint message"
// @Param attachment formData file false "Image attachment (png/jpg/jpeg, max 5 MB)"
// @Success 201 {object} response.Message "Complaint created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/complaints [post]
// @Security BearerAuth
func (handler *Handler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateComplaint")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	req := dto.CreateComplaintRequest{
		RoomID:  r.FormValue("room_id"),
		Message: r.FormValue("message"),
	}

	file, fileHeader, err := r.FormFile("attachment")
	if err == nil {
		req.Attachment = fileHeader
		req.AttachmentFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create complaint")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Complaint created successfully")

	response.WithMessage(w, http.StatusCreated, "Complaint created successfully")
}

// GetComplaints retrieves complaints visible to the caller.
// @Summary Get all complaints
// @Description Retrieve complaints. Regular members only see their own submissions.
// @Tags Complaint
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_id query string false "Filter by room"
// @Param complaint_status query string false "Filter by complaint status"
// @Success 200 {object} response.Data[dto.ComplaintResponse] "List of complaints"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/complaints [get]
// @Security BearerAuth
func (handler *Handler) GetComplaints(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetComplaints")
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

	if roomID := r.URL.Query().Get(model.FieldRoomID); roomID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		})
	}

	if complaintStatus := r.URL.Query().Get(model.FieldComplaintStatus); complaintStatus != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldComplaintStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    complaintStatus,
			Table:    model.TableName,
		})
	}

	complaints, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get complaints")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Complaints retrieved successfully")

	response.WithJSON(w, http.StatusOK, complaints)
}

// GetComplaint retrieves a complaint by ID.
// @Summary Get a complaint
// @Description Retrieve a complaint by its ID. Regular members only see their own submissions.
// @Tags Complaint
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} dto.ComplaintResponse "Complaint details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/complaints/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetComplaint(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetComplaint")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	complaint, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get complaint")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Complaint retrieved successfully")

	response.WithJSON(w, http.StatusOK, complaint)
}

// CompleteComplaint marks a complaint as completed.
// @Summary Complete a complaint
// @Description Mark a pending or in-progress complaint as completed with an optional resolution message.
// @Tags Complaint
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param request body dto.ResolveComplaintRequest false "Resolve Complaint Request"
// @Success 200 {object} response.Message "Complaint completed successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/complaints/{id}/complete [patch]
// @Security BearerAuth
func (handler *Handler) CompleteComplaint(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteComplaint")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ResolveComplaintRequest{}

	// The resolution message is optional, so an empty body is allowed.
	if r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	if err := handler.service.Complete(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete complaint")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Complaint completed successfully")

	response.WithMessage(w, http.StatusOK, "Complaint completed successfully")
}

// RejectComplaint marks a complaint as rejected.
// @Summary Reject a complaint
// @Description Mark a pending or in-progress complaint as rejected with an optional resolution message.
// @Tags Complaint
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param request body dto.ResolveComplaintRequest false "Resolve Complaint Request"
// @Success 200 {object} response.Message "Complaint rejected successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/complaints/{id}/reject [patch]
// @Security BearerAuth
func (handler *Handler) RejectComplaint(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectComplaint")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ResolveComplaintRequest{}

	if r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	if err := handler.service.Reject(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject complaint")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Complaint rejected successfully")

	response.WithMessage(w, http.StatusOK, "Complaint rejected successfully")
}

// DeleteComplaint withdraws a pending complaint.
// @Summary Delete a complaint
// @Description Withdraw a pending complaint submitted by the authenticated member.
// @Tags Complaint
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} response.Message "Complaint deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/complaints/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteComplaint(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteComplaint")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete complaint")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Complaint deleted successfully")

	response.WithMessage(w, http.StatusOK, "Complaint deleted successfully")
}
