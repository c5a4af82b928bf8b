package application

import (
	"fmt"
	"net/http"

	"himalayandays/infras/otel"
	"himalayandays/internal/domains/application/model"
	"himalayandays/internal/domains/application/model/dto"
	"himalayandays/internal/domains/application/service"
	"himalayandays/shared/constant"
	gDto "himalayandays/shared/dto"
	"himalayandays/shared/validator"
	"himalayandays/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Application
	otel    otel.Otel
}

func New(service service.Application, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/applications", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateApplication)
		routerGroup.Get("/", handler.GetApplications)
		routerGroup.Get("/{id}", handler.GetApplicationByID)
		routerGroup.Get("/{id}/resume", handler.DownloadResume)
		routerGroup.Delete("/{id}", handler.DeleteApplication)
	})
}

// CreateApplication handles a job application submitted with a resume file.
// @Summary Submit a job application
// @Description Submit a job application with an attached resume (PDF or Word, max 5 MB).
// @Tags Application
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Applicant name"
// @Param email formData string true "Applicant email"
// @Param phone formData string false "Applicant phone"
// @Param position formData string true "Position applied for"
// @Param cover_letter formData string false "Cover letter"
// @Param resume formData file true "Resume file"
// @Success 201 {object} response.Message "Application submitted successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/applications [post]
func (handler *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateApplication")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile("resume")
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get resume from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	req := dto.CreateApplicationRequest{
		Name:        r.FormValue("name"),
		Email:       r.FormValue("email"),
		Phone:       r.FormValue("phone"),
		Position:    r.FormValue("position"),
		CoverLetter: r.FormValue("cover_letter"),
		Resume:      fileHeader,
		ResumeFile:  file,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate application")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create job application")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Job application submitted successfully")

	response.WithMessage(w, http.StatusCreated, "Application submitted successfully")
}

// GetApplications retrieves all job applications based on query parameters.
// @Summary Get all job applications
// @Description Retrieve all job applications with optional filtering and pagination.
// @Tags Application
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param position query string false "Filter by position"
// @Success 200 {object} response.Data[dto.GetApplicationsResponse] "List of job applications"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/applications [get]
// @Security BearerAuth
func (handler *Handler) GetApplications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetApplications")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	position := r.URL.Query().Get(model.FieldPosition)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if position != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPosition,
			Operator: gDto.FilterOperatorLike,
			Value:    position,
			Table:    model.TableName,
		})
	}

	applications, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get job applications")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Job applications retrieved successfully")

	response.WithJSON(w, http.StatusOK, applications)
}

// GetApplicationByID retrieves a job application by its ID.
// @Summary Get a job application by ID
// @Description Retrieve a job application by its unique identifier.
// @Tags Application
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} response.Data[dto.ApplicationResponse] "Job application details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/applications/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetApplicationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetApplicationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	application, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get job application by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Job application retrieved successfully")

	response.WithJSON(w, http.StatusOK, application)
}

// DownloadResume streams the stored resume file back to the admin.
// @Summary Download an applicant's resume
// @Description Download the resume blob stored for a job application.
// @Tags Application
// @Produce application/octet-stream
// @Param id path string true "Application ID"
// @Success 200 {file} binary "Resume file"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/applications/{id}/resume [get]
// @Security BearerAuth
func (handler *Handler) DownloadResume(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DownloadResume")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	resume, err := handler.service.Resume(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to download resume")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Resume downloaded successfully")

	w.Header().Set(constant.RequestHeaderContentType, resume.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resume.FileName))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(resume.Data); err != nil {
		log.Error().Err(err).Msg("failed to write resume response")
	}
}

// DeleteApplication deletes a job application by its ID.
// @Summary Delete a job application by ID
// @Description Permanently delete a job application and its stored resume.
// @Tags Application
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} response.Message "Application deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/applications/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteApplication")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete job application")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Job application deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Application deleted successfully")
}
