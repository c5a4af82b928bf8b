package inquiry

import (
	"net/http"
	"strconv"

	"himalayandays/infras/otel"
	"himalayandays/internal/domains/inquiry/model"
	"himalayandays/internal/domains/inquiry/model/dto"
	"himalayandays/internal/domains/inquiry/service"
	"himalayandays/shared"
	"himalayandays/shared/constant"
	gDto "himalayandays/shared/dto"
	"himalayandays/shared/failure"
	"himalayandays/shared/validator"
	"himalayandays/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Inquiry
	otel    otel.Otel
}

func New(service service.Inquiry, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/inquiries", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateInquiry)
		routerGroup.Get("/", handler.GetInquiries)
		routerGroup.Get("/check-new", handler.CheckForNew)
		routerGroup.Get("/{id}", handler.GetInquiryByID)
		routerGroup.Patch("/{id}", handler.UpdateInquiry)
		routerGroup.Patch("/{id}/status", handler.UpdateInquiryStatus)
		routerGroup.Patch("/{id}/read", handler.MarkInquiryRead)
		routerGroup.Delete("/{id}", handler.TrashInquiry)
		routerGroup.Post("/{id}/restore", handler.RestoreInquiry)
		routerGroup.Delete("/{id}/purge", handler.PurgeInquiry)
	})
}

// CreateInquiry handles a new inquiry submitted from the public website.
// @Summary Submit a new inquiry
// @Description Submit a travel inquiry. New inquiries enter the pipeline as PENDING and are relayed to the operations channel.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param request body dto.CreateInquiryRequest true "Create Inquiry Request"
// @Success 201 {object} response.Message "Inquiry submitted successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries [post]
func (handler *Handler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInquiry")
	defer scope.End()

	req := dto.CreateInquiryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create inquiry")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Inquiry submitted successfully")

	response.WithMessage(w, http.StatusCreated, "Inquiry submitted successfully")
}

// GetInquiries retrieves all inquiries based on query parameters.
// @Summary Get all inquiries
// @Description Retrieve all inquiries with optional filtering and pagination. Trashed inquiries are excluded unless trashed=true.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by pipeline status"
// @Param type query string false "Filter by inquiry type"
// @Param is_read query string false "Filter by read flag (true/false)"
// @Param trashed query string false "Show only trashed inquiries (true/false)"
// @Success 200 {object} response.Data[dto.GetInquiriesResponse] "List of inquiries"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries [get]
// @Security BearerAuth
func (handler *Handler) GetInquiries(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInquiries")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get(model.FieldStatus)
	inquiryType := r.URL.Query().Get(model.FieldType)
	isRead := r.URL.Query().Get(model.FieldIsRead)
	trashed := r.URL.Query().Get("trashed")

	trashedOperator := gDto.FilterIsNull
	if trashed == "true" {
		trashedOperator = gDto.FilterIsNotNull
	}

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldDeletedAt,
				Operator: trashedOperator,
				Table:    model.TableName,
			},
		},
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if inquiryType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldType,
			Operator: gDto.FilterOperatorEq,
			Value:    inquiryType,
			Table:    model.TableName,
		})
	}

	if isRead != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsRead,
			Operator: gDto.FilterOperatorEq,
			Value:    shared.ConvertStringToBool(isRead),
			Table:    model.TableName,
		})
	}

	inquiries, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get inquiries")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Inquiries retrieved successfully")

	response.WithJSON(w, http.StatusOK, inquiries)
}

// CheckForNew reports whether inquiries arrived after the caller's cursor.
// @Summary Check for new inquiries
// @Description Poll for inquiries created after the given unix-millisecond timestamp. The response carries the cursor for the next poll.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param since query int true "Unix-millisecond timestamp of the last seen inquiry"
// @Success 200 {object} response.Data[dto.CheckForNewResponse] "New inquiry summary"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries/check-new [get]
// @Security BearerAuth
func (handler *Handler) CheckForNew(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckForNew")
	defer scope.End()

	since, err := strconv.ParseInt(r.URL.Query().Get("since"), 10, 64)
	if err != nil || since < 0 {
		response.WithError(w, failure.BadRequestFromString("since must be a unix-millisecond timestamp"))

		return
	}

	res, err := handler.service.CheckForNew(ctx, since)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check for new inquiries")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetInquiryByID retrieves an inquiry by its ID.
// @Summary Get an inquiry by ID
// @Description Retrieve an inquiry by its unique identifier.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} response.Data[dto.InquiryResponse] "Inquiry details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetInquiryByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInquiryByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	inquiry, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get inquiry by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Inquiry retrieved successfully")

	response.WithJSON(w, http.StatusOK, inquiry)
}

// UpdateInquiry updates contact details of an existing inquiry.
// @Summary Update an inquiry by ID
// @Description Update the contact details of an existing inquiry.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body dto.UpdateInquiryRequest true "Update Inquiry Request"
// @Success 200 {object} response.Message "Inquiry updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateInquiry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateInquiry")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateInquiryRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update inquiry")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Inquiry updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Inquiry updated successfully")
}

// UpdateInquiryStatus moves an inquiry through the pipeline.
// @Summary Update inquiry status
// @Description Move an inquiry to a new pipeline status. Illegal transitions are rejected; setting the current status again is a no-op.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Message "Inquiry status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateInquiryStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update inquiry status")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Inquiry status updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Inquiry status updated successfully")
}

// MarkInquiryRead marks an inquiry as read.
// @Summary Mark an inquiry as read
// @Description Mark an inquiry as read so it stops counting toward the unread badge.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} response.Message "Inquiry marked as read"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries/{id}/read [patch]
// @Security BearerAuth
func (handler *Handler) MarkInquiryRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkInquiryRead")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.MarkRead(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark inquiry as read")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Inquiry marked as read by user " + user)

	response.WithMessage(w, http.StatusOK, "Inquiry marked as read")
}

// TrashInquiry moves an inquiry to the trash.
// @Summary Trash an inquiry by ID
// @Description Soft-delete an inquiry. Trashed inquiries disappear from listings but can be restored.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} response.Message "Inquiry trashed successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries/{id} [delete]
// @Security BearerAuth
func (handler *Handler) TrashInquiry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TrashInquiry")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Trash(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to trash inquiry")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Inquiry trashed successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Inquiry trashed successfully")
}

// RestoreInquiry restores a trashed inquiry.
// @Summary Restore an inquiry by ID
// @Description Restore an inquiry from the trash back into the pipeline.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} response.Message "Inquiry restored successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries/{id}/restore [post]
// @Security BearerAuth
func (handler *Handler) RestoreInquiry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RestoreInquiry")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Restore(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to restore inquiry")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Inquiry restored successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Inquiry restored successfully")
}

// PurgeInquiry permanently deletes a trashed inquiry.
// @Summary Purge an inquiry by ID
// @Description Permanently delete an inquiry. The inquiry must already be in the trash.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} response.Message "Inquiry purged successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries/{id}/purge [delete]
// @Security BearerAuth
func (handler *Handler) PurgeInquiry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PurgeInquiry")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Purge(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to purge inquiry")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Inquiry purged successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Inquiry purged successfully")
}
