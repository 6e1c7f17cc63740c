package block

import (
	"net/http"

	"floorplan/infras/otel"
	"floorplan/internal/domains/block/service"
	"floorplan/internal/domains/reservation/model/dto"
	"floorplan/shared/constant"
	"floorplan/shared/validator"
	"floorplan/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Block
	otel    otel.Otel
}

func New(service service.Block, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/blocks", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBlock)
		routerGroup.Delete("/{call_id}", handler.RemoveBlock)
	})
}

// CreateBlock places a temporary hold for an ongoing call.
// @Summary Create a temporary hold
// @Tags Block
// @Accept json
// @Produce json
// @Param request body dto.CreateBlockRequest true "Hold"
// @Success 201 {object} response.Body[dto.CreateReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocks [post]
// @Security BearerAuth
// @Security ApiKeyAuth
func (handler *Handler) CreateBlock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBlock")
	defer scope.End()

	req := dto.CreateBlockRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreateBlock(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create block")

		response.WithError(w, err)

		return
	}

	response.WithJSONMessage(w, http.StatusCreated, "table blocked", res)
}

// RemoveBlock drops every hold of a call.
// @Summary Remove temporary holds
// @Tags Block
// @Produce json
// @Param call_id path string true "Call identifier"
// @Success 200 {object} response.Body[dto.RemoveBlockResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocks/{call_id} [delete]
// @Security BearerAuth
// @Security ApiKeyAuth
func (handler *Handler) RemoveBlock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveBlock")
	defer scope.End()

	res, err := handler.service.RemoveBlock(ctx, chi.URLParam(r, constant.RequestParamCallID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove block")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
