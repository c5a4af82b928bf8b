package tour

import (
	"encoding/xml"
	"net/http"

	"himalayandays/infras/otel"
	"himalayandays/internal/domains/tour/model"
	"himalayandays/internal/domains/tour/model/dto"
	"himalayandays/internal/domains/tour/service"
	"himalayandays/shared"
	"himalayandays/shared/constant"
	gDto "himalayandays/shared/dto"
	"himalayandays/shared/validator"
	"himalayandays/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Tour
	otel    otel.Otel
}

func New(service service.Tour, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/packages", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePackage)
		routerGroup.Get("/", handler.GetPackages)
		routerGroup.Get("/{id}", handler.GetPackage)
		routerGroup.Get("/slug/{slug}", handler.GetPackageBySlug)
		routerGroup.Patch("/{id}", handler.UpdatePackage)
		routerGroup.Patch("/{id}/publish", handler.PublishPackage)
		routerGroup.Delete("/{id}", handler.DeletePackage)
	})

	router.Get("/sitemap.xml", handler.Sitemap)
}

// CreatePackage creates a new tour package.
// @Summary Create a tour package
// @Description Create a tour package. The slug must be unique across packages.
// @Tags Tour Package
// @Accept json
// @Produce json
// @Param request body dto.CreatePackageRequest true "Create Package Request"
// @Success 201 {object} response.Message "Package created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/packages [post]
// @Security BearerAuth
func (handler *Handler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePackage")
	defer scope.End()

	req := dto.CreatePackageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create package")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Package created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Package created successfully")
}

// GetPackages retrieves all tour packages based on query parameters.
// @Summary Get all tour packages
// @Description Retrieve tour packages with optional filtering and pagination.
// @Tags Tour Package
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param destination query string false "Filter by destination"
// @Param title query string false "Filter by title (partial match)"
// @Param is_published query string false "Filter by published flag (true/false)"
// @Success 200 {object} response.Data[dto.GetPackagesResponse] "List of packages"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/packages [get]
func (handler *Handler) GetPackages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	destination := r.URL.Query().Get(model.FieldDestination)
	title := r.URL.Query().Get(model.FieldTitle)
	isPublished := r.URL.Query().Get(model.FieldIsPublished)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if destination != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDestination,
			Operator: gDto.FilterOperatorLike,
			Value:    destination,
			Table:    model.TableName,
		})
	}

	if title != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTitle,
			Operator: gDto.FilterOperatorLike,
			Value:    title,
			Table:    model.TableName,
		})
	}

	if isPublished != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsPublished,
			Operator: gDto.FilterOperatorEq,
			Value:    shared.ConvertStringToBool(isPublished),
			Table:    model.TableName,
		})
	}

	packages, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get packages")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Packages retrieved successfully")

	response.WithJSON(w, http.StatusOK, packages)
}

// GetPackage retrieves a tour package by its ID.
// @Summary Get a tour package by ID
// @Description Retrieve a single tour package by its ID.
// @Tags Tour Package
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} response.Data[dto.PackageResponse] "Package details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/packages/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPackage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	pkg, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get package")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Package retrieved successfully")

	response.WithJSON(w, http.StatusOK, pkg)
}

// GetPackageBySlug retrieves a published tour package by its slug.
// @Summary Get a published tour package by slug
// @Description Retrieve a single published tour package by its slug. Unpublished packages return 404.
// @Tags Tour Package
// @Accept json
// @Produce json
// @Param slug path string true "Package slug"
// @Success 200 {object} response.Data[dto.PackageResponse] "Package details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/packages/slug/{slug} [get]
func (handler *Handler) GetPackageBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackageBySlug")
	defer scope.End()

	slug := chi.URLParam(r, "slug")

	pkg, err := handler.service.GetBySlug(ctx, slug)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get package by slug")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Package retrieved successfully")

	response.WithJSON(w, http.StatusOK, pkg)
}

// UpdatePackage updates a tour package by its ID. The slug is immutable.
// @Summary Update a tour package by ID
// @Description Update package fields. The slug cannot be changed after creation.
// @Tags Tour Package
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Param request body dto.UpdatePackageRequest true "Update Package Request"
// @Success 200 {object} response.Message "Package updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/packages/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePackage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePackageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update package")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Package updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Package updated successfully")
}

// PublishPackage sets the published flag of a tour package.
// @Summary Publish or unpublish a tour package
// @Description Set the published flag. Only published packages appear on the public site and sitemap.
// @Tags Tour Package
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Param request body dto.PublishPackageRequest true "Publish Package Request"
// @Success 200 {object} response.Message "Package publish state updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/packages/{id}/publish [patch]
// @Security BearerAuth
func (handler *Handler) PublishPackage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PublishPackage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.PublishPackageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Publish(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to publish package")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Package publish state updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Package publish state updated successfully")
}

// DeletePackage permanently deletes a tour package by its ID.
// @Summary Delete a tour package by ID
// @Description Permanently delete a tour package.
// @Tags Tour Package
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} response.Message "Package deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/packages/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePackage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete package")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Package deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Package deleted successfully")
}

// Sitemap serves the XML sitemap of the public site.
// @Summary Get the XML sitemap
// @Description Retrieve the sitemap listing static pages and published tour packages.
// @Tags Tour Package
// @Produce xml
// @Success 200 {string} string "Sitemap XML"
// @Failure 500 {object} response.Error
// @Router /v1/sitemap.xml [get]
func (handler *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Sitemap")
	defer scope.End()

	sitemap, err := handler.service.Sitemap(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build sitemap")

		response.WithError(w, err)

		return
	}

	body, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to marshal sitemap")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Sitemap served successfully")

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(body)
}
