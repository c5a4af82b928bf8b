package media

import (
	"io"
	"net/http"

	"himalayandays/infras/otel"
	"himalayandays/internal/domains/media/service"
	"himalayandays/shared/constant"
	"himalayandays/shared/failure"
	"himalayandays/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Media
	otel    otel.Otel
}

func New(service service.Media, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/media", handler.Upload)
}

// Upload stores a raw binary body in blob storage.
// @Summary Upload a media file
// @Description Upload a raw binary body. The filename query parameter supplies the extension.
// @Tags Media
// @Accept octet-stream
// @Produce json
// @Param filename query string true "Original file name"
// @Success 201 {object} response.Data[dto.UploadResponse] "Uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media [post]
// @Security BearerAuth
func (handler *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Upload")
	defer scope.End()

	fileName := r.URL.Query().Get("filename")
	if fileName == constant.Empty {
		err := failure.BadRequestFromString("filename query parameter is required")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constant.RequestMaxMemory))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read request body")

		response.WithError(w, failure.BadRequestFromString("failed to read request body"))

		return
	}

	if len(data) == 0 {
		err := failure.BadRequestFromString("request body cannot be empty")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Upload(ctx, fileName, r.Header.Get(constant.RequestHeaderContentType), data)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload media")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Media uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}
