package availability

import (
	"net/http"
	"strconv"

	"floorplan/infras/otel"
	"floorplan/internal/domains/availability/model/dto"
	"floorplan/internal/domains/availability/service"
	"floorplan/shared/constant"
	"floorplan/shared/failure"
	"floorplan/shared/validator"
	"floorplan/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.FindAvailable)
	})
}

// FindAvailable lists tables that can seat the party.
// @Summary Find available tables
// @Description Active tables with enough capacity and no reservation or foreign hold in the shift of the given time, smallest first.
// @Tags Availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param time query string true "Time (HH:MM)"
// @Param party_size query integer true "Number of guests"
// @Param call_id query string false "Caller whose own holds are ignored"
// @Success 200 {object} response.Body[[]dto.AvailableTableResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
// @Security BearerAuth
// @Security ApiKeyAuth
func (handler *Handler) FindAvailable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FindAvailable")
	defer scope.End()

	query := r.URL.Query()
	req := dto.AvailabilityRequest{
		Date:   query.Get(constant.RequestParamDate),
		Time:   query.Get(constant.RequestParamTime),
		CallID: query.Get(constant.RequestParamCallID),
	}

	if raw := query.Get(constant.RequestParamPartySize); raw != constant.Empty {
		partySize, err := strconv.Atoi(raw)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("party_size must be a number"))

			return
		}

		req.PartySize = partySize
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.FindAvailable(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to find available tables")

		response.WithError(w, err)

		return
	}

	scope.SetAttribute("availability.count", len(res))

	response.WithJSON(w, http.StatusOK, res)
}
