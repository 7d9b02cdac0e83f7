package contract

import (
	"net/http"

	"loft/infras/otel"
	"loft/internal/domains/contract/model"
	"loft/internal/domains/contract/model/dto"
	"loft/internal/domains/contract/service"
	"loft/shared/constant"
	gDto "loft/shared/dto"
	"loft/shared/validator"
	"loft/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Contract
	otel    otel.Otel
}

func New(service service.Contract, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Post("/rooms/{roomId}/contracts", handler.CreateContract)
	r.Get("/rooms/{roomId}/contracts", handler.GetContracts)

	r.Route("/contracts", func(r chi.Router) {
		r.Get("/{id}", handler.GetContract)
		r.Patch("/{id}/activate", handler.ActivateContract)
		r.Patch("/{id}/complete", handler.CompleteContract)
		r.Patch("/{id}/cancel", handler.CancelContract)
	})
}

// CreateContract registers a new contract for a room.
// @Summary Create a contract
// @Description Register a new pending contract between a room and a tenant.
// @Tags Contract
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID"
// @Param request body dto.CreateContractRequest true "Create Contract Request"
// @Success 201 {object} response.Message "Contract created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{roomId}/contracts [post]
// @Security BearerAuth
func (handler *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateContract")
	defer scope.End()

	roomID := chi.URLParam(r, constant.RequestParamRoomID)

	req := dto.CreateContractRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req, roomID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create contract")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contract created successfully")

	response.WithMessage(w, http.StatusCreated, "Contract created successfully")
}

// GetContracts retrieves all contracts for a room.
// @Summary Get all contracts
// @Description Retrieve all contracts for a room with optional filtering and pagination.
// @Tags Contract
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param contract_status query string false "Filter by contract status"
// @Success 200 {object} response.Data[dto.ContractResponse] "List of contracts"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{roomId}/contracts [get]
// @Security BearerAuth
func (handler *Handler) GetContracts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContracts")
	defer scope.End()

	roomID := chi.URLParam(r, constant.RequestParamRoomID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
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

	if contractStatus := r.URL.Query().Get(model.FieldContractStatus); contractStatus != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldContractStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    contractStatus,
			Table:    model.TableName,
		})
	}

	contracts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contracts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contracts retrieved successfully")

	response.WithJSON(w, http.StatusOK, contracts)
}

// GetContract retrieves a contract by ID.
// @Summary Get a contract
// @Description Retrieve a contract by its ID.
// @Tags Contract
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} dto.ContractResponse "Contract details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contracts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContract")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	contract, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contract")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contract retrieved successfully")

	response.WithJSON(w, http.StatusOK, contract)
}

// ActivateContract moves a pending contract to in progress.
// @Summary Activate a contract
// @Description Move a pending contract to in progress. Only one contract per room may be in progress.
// @Tags Contract
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} response.Message "Contract activated successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contracts/{id}/activate [patch]
// @Security BearerAuth
func (handler *Handler) ActivateContract(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ActivateContract")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Activate(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to activate contract")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contract activated successfully")

	response.WithMessage(w, http.StatusOK, "Contract activated successfully")
}

// CompleteContract moves an in-progress contract to completed.
// @Summary Complete a contract
// @Description Move an in-progress contract to completed.
// @Tags Contract
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} response.Message "Contract completed successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contracts/{id}/complete [patch]
// @Security BearerAuth
func (handler *Handler) CompleteContract(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteContract")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Complete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete contract")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contract completed successfully")

	response.WithMessage(w, http.StatusOK, "Contract completed successfully")
}

// CancelContract cancels a pending or in-progress contract.
// @Summary Cancel a contract
// @Description Cancel a pending or in-progress contract.
// @Tags Contract
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} response.Message "Contract canceled successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contracts/{id}/cancel [patch]
// @Security BearerAuth
func (handler *Handler) CancelContract(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelContract")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel contract")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contract canceled successfully")

	response.WithMessage(w, http.StatusOK, "Contract canceled successfully")
}
