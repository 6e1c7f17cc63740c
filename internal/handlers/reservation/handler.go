package reservation

import (
	"net/http"

	"floorplan/infras/otel"
	"floorplan/internal/domains/reservation/model"
	"floorplan/internal/domains/reservation/model/dto"
	"floorplan/internal/domains/reservation/service"
	"floorplan/shared/constant"
	gDto "floorplan/shared/dto"
	"floorplan/shared/validator"
	"floorplan/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryParamTable    = "table_id"
	queryParamCustomer = "customer"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// TableRouter registers the per-table actions on a router already scoped to /tables.
func (handler *Handler) TableRouter(router chi.Router) {
	router.Post("/{code}/reserve", handler.CreateReservation)
	router.Post("/{code}/occupy", handler.OccupyWalkIn)
	router.Post("/{code}/arrived", handler.ConfirmArrival)
	router.Post("/{code}/free", handler.Release)
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Get("/{id}", handler.GetReservation)
	})
}

// dateShiftBody fills date and shift from the query string, then lets an optional JSON body override them.
func dateShiftBody[T any](r *http.Request, req *T, set func(req *T, date, shift string)) error {
	set(req, r.URL.Query().Get(constant.RequestParamDate), r.URL.Query().Get(constant.RequestParamShift))

	if r.ContentLength == 0 {
		return validator.ValidateStruct(req)
	}

	return validator.Validate(r.Body, req)
}

// CreateReservation books a table for a customer.
// @Summary Reserve a table
// @Description Fails with 409 when the table already holds an active reservation in the same shift or the party exceeds its capacity.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param code path string true "Table code"
// @Param request body dto.CreateReservationRequest true "Reservation"
// @Success 201 {object} response.Body[dto.CreateReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{code}/reserve [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req, chi.URLParam(r, constant.RequestParamCode))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation " + res.ID + " created")

	response.WithJSONMessage(w, http.StatusCreated, "reservation created successfully", res)
}

// OccupyWalkIn seats a walk-in party.
// @Summary Occupy a table without reservation
// @Tags Reservation
// @Accept json
// @Produce json
// @Param code path string true "Table code"
// @Param request body dto.WalkInRequest false "Date and shift, default today and current shift"
// @Success 201 {object} response.Body[dto.CreateReservationResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{code}/occupy [post]
// @Security BearerAuth
func (handler *Handler) OccupyWalkIn(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OccupyWalkIn")
	defer scope.End()

	req := dto.WalkInRequest{}

	err := dateShiftBody(r, &req, func(req *dto.WalkInRequest, date, shift string) {
		req.Date, req.Shift = date, shift
	})
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.OccupyWalkIn(ctx, req, chi.URLParam(r, constant.RequestParamCode))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to occupy table")

		response.WithError(w, err)

		return
	}

	response.WithJSONMessage(w, http.StatusCreated, "table occupied", res)
}

// ConfirmArrival marks the reserved party as seated.
// @Summary Confirm arrival
// @Tags Reservation
// @Accept json
// @Produce json
// @Param code path string true "Table code"
// @Param request body dto.ArrivalRequest true "Date and optional shift"
// @Success 200 {object} response.Body[dto.ArrivalResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{code}/arrived [post]
// @Security BearerAuth
func (handler *Handler) ConfirmArrival(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmArrival")
	defer scope.End()

	req := dto.ArrivalRequest{}

	err := dateShiftBody(r, &req, func(req *dto.ArrivalRequest, date, shift string) {
		req.Date, req.Shift = date, shift
	})
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.ConfirmArrival(ctx, req, chi.URLParam(r, constant.RequestParamCode))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm arrival")

		response.WithError(w, err)

		return
	}

	response.WithJSONMessage(w, http.StatusOK, "arrival confirmed", res)
}

// Release cancels every active reservation of the table for the date.
// @Summary Free a table
// @Description Idempotent; cancels reserved and occupied rows of the date in every shift.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param code path string true "Table code"
// @Param request body dto.ReleaseRequest false "Date, defaults to today"
// @Success 200 {object} response.Body[dto.ReleaseResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{code}/free [post]
// @Security BearerAuth
func (handler *Handler) Release(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Release")
	defer scope.End()

	req := dto.ReleaseRequest{}

	err := dateShiftBody(r, &req, func(req *dto.ReleaseRequest, date, shift string) {
		req.Date, req.Shift = date, shift
	})
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Release(ctx, req, chi.URLParam(r, constant.RequestParamCode))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to release table")

		response.WithError(w, err)

		return
	}

	response.WithJSONMessage(w, http.StatusOK, "table released", res)
}

// GetReservations lists reservations.
// @Summary List reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param date query string false "Filter by date"
// @Param table_id query string false "Filter by table code"
// @Param status query string false "reserved, occupied, cancelled or blocked"
// @Param customer query string false "Filter by customer name"
// @Success 200 {object} response.Body[dto.GetReservationsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()
	filter := dto.ReservationFilter{
		Date:      query.Get(constant.RequestParamDate),
		TableCode: query.Get(queryParamTable),
		Status:    model.Status(query.Get(constant.RequestParamStatus)),
		Customer:  query.Get(queryParamCustomer),
	}

	if err := validator.ValidateStruct(&filter); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetReservation retrieves one reservation.
// @Summary Get a reservation
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Body[dto.ReservationResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservation")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
