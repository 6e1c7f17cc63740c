package layout

import (
	"net/http"

	"floorplan/infras/otel"
	"floorplan/internal/domains/layout/service"
	tableDto "floorplan/internal/domains/table/model/dto"
	"floorplan/shared/constant"
	"floorplan/shared/validator"
	"floorplan/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Layout
	otel    otel.Otel
}

func New(service service.Layout, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/layout", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.Export)
		routerGroup.Post("/backup", handler.Backup)
	})
}

func floorPlanRequest(r *http.Request) (tableDto.FloorPlanRequest, error) {
	req := tableDto.FloorPlanRequest{
		Date:  r.URL.Query().Get(constant.RequestParamDate),
		Shift: r.URL.Query().Get(constant.RequestParamShift),
	}

	return req, validator.ValidateStruct(&req)
}

// Export writes and returns the JSON layout snapshot.
// @Summary Export layout
// @Tags Layout
// @Produce json
// @Param date query string false "Date, defaults to today"
// @Param shift query string false "midday or evening"
// @Success 200 {object} response.Body[model.Layout]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/layout [get]
// @Security BearerAuth
func (handler *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportLayout")
	defer scope.End()

	req, err := floorPlanRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Export(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export layout")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Backup uploads the layout snapshot to object storage.
// @Summary Back up layout
// @Tags Layout
// @Produce json
// @Param date query string false "Date, defaults to today"
// @Param shift query string false "midday or evening"
// @Success 201 {object} response.Body[dto.BackupResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/layout/backup [post]
// @Security BearerAuth
func (handler *Handler) Backup(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BackupLayout")
	defer scope.End()

	req, err := floorPlanRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Backup(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to back up layout")

		response.WithError(w, err)

		return
	}

	response.WithJSONMessage(w, http.StatusCreated, "layout backed up", res)
}
