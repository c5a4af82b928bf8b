package subscriber

import (
	"net/http"

	"himalayandays/infras/otel"
	"himalayandays/internal/domains/subscriber/model"
	"himalayandays/internal/domains/subscriber/model/dto"
	"himalayandays/internal/domains/subscriber/service"
	"himalayandays/shared"
	"himalayandays/shared/constant"
	gDto "himalayandays/shared/dto"
	"himalayandays/shared/validator"
	"himalayandays/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Subscriber
	otel    otel.Otel
}

func New(service service.Subscriber, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/subscribers", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.Subscribe)
		routerGroup.Post("/unsubscribe", handler.Unsubscribe)
		routerGroup.Get("/", handler.GetSubscribers)
		routerGroup.Delete("/{id}", handler.DeleteSubscriber)
	})
}

// Subscribe adds an email to the newsletter mailing list.
// @Summary Subscribe to the newsletter
// @Description Subscribe an email. A previously unsubscribed email is reactivated; an already-active one is rejected.
// @Tags Subscriber
// @Accept json
// @Produce json
// @Param request body dto.SubscribeRequest true "Subscribe Request"
// @Success 201 {object} response.Data[dto.SubscribeResponse] "Subscribed successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/subscribers [post]
func (handler *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Subscribe")
	defer scope.End()

	req := dto.SubscribeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Subscribe(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to subscribe")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Subscriber added successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// Unsubscribe deactivates a newsletter subscription.
// @Summary Unsubscribe from the newsletter
// @Description Deactivate a subscription. Unsubscribing an already-inactive email succeeds without change.
// @Tags Subscriber
// @Accept json
// @Produce json
// @Param request body dto.UnsubscribeRequest true "Unsubscribe Request"
// @Success 200 {object} response.Message "Unsubscribed successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/subscribers/unsubscribe [post]
func (handler *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Unsubscribe")
	defer scope.End()

	req := dto.UnsubscribeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Unsubscribe(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to unsubscribe")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Subscriber unsubscribed successfully")

	response.WithMessage(w, http.StatusOK, "Unsubscribed successfully")
}

// GetSubscribers retrieves all subscribers based on query parameters.
// @Summary Get all subscribers
// @Description Retrieve all subscribers with optional filtering and pagination.
// @Tags Subscriber
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param is_active query string false "Filter by active flag (true/false)"
// @Success 200 {object} response.Data[dto.GetSubscribersResponse] "List of subscribers"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/subscribers [get]
// @Security BearerAuth
func (handler *Handler) GetSubscribers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSubscribers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	isActive := r.URL.Query().Get(model.FieldIsActive)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if isActive != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    shared.ConvertStringToBool(isActive),
			Table:    model.TableName,
		})
	}

	subscribers, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get subscribers")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Subscribers retrieved successfully")

	response.WithJSON(w, http.StatusOK, subscribers)
}

// DeleteSubscriber permanently deletes a subscriber by its ID.
// @Summary Delete a subscriber by ID
// @Description Permanently delete a subscriber record.
// @Tags Subscriber
// @Accept json
// @Produce json
// @Param id path string true "Subscriber ID"
// @Success 200 {object} response.Message "Subscriber deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/subscribers/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSubscriber(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSubscriber")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete subscriber")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Subscriber deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Subscriber deleted successfully")
}
