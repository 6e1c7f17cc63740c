package table

import (
	"net/http"

	"floorplan/infras/otel"
	"floorplan/internal/domains/table/model/dto"
	"floorplan/internal/domains/table/service"
	"floorplan/shared/constant"
	"floorplan/shared/validator"
	"floorplan/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Table
	otel    otel.Otel
}

func New(service service.Table, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers the table routes on a router already scoped to /tables.
func (handler *Handler) Router(router chi.Router) {
	router.Get("/", handler.FloorPlan)
	router.Post("/", handler.CreateTable)
	router.Get("/{code}", handler.GetTable)
	router.Patch("/{code}", handler.UpdateTable)
	router.Post("/{code}/position", handler.RepositionTable)
	router.Delete("/{code}", handler.DeleteTable)
}

// FloorPlan lists active tables with their occupancy.
// @Summary List tables with occupancy
// @Description Active tables ordered by code with free/reserved/occupied status for a date and shift.
// @Tags Table
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Param shift query string false "midday or evening, defaults to the current shift"
// @Success 200 {object} response.Body[dto.FloorPlanResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables [get]
// @Security BearerAuth
func (handler *Handler) FloorPlan(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FloorPlan")
	defer scope.End()

	req := dto.FloorPlanRequest{
		Date:  r.URL.Query().Get(constant.RequestParamDate),
		Shift: r.URL.Query().Get(constant.RequestParamShift),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.FloorPlan(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get floor plan")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateTable adds a table to the floor plan.
// @Summary Create a table
// @Description The code is generated as T{n}; position defaults to a 4-column grid.
// @Tags Table
// @Accept json
// @Produce json
// @Param request body dto.CreateTableRequest true "Table"
// @Success 201 {object} response.Body[dto.TableResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables [post]
// @Security BearerAuth
func (handler *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTable")
	defer scope.End()

	req := dto.CreateTableRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create table")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Table " + res.ID + " created by user " + user)

	response.WithJSONMessage(w, http.StatusCreated, "table created successfully", res)
}

// GetTable retrieves a table by code.
// @Summary Get a table
// @Tags Table
// @Produce json
// @Param code path string true "Table code"
// @Success 200 {object} response.Body[dto.TableResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{code} [get]
// @Security BearerAuth
func (handler *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTable")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamCode))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get table")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateTable changes capacity, zone, rotation or name.
// @Summary Update a table
// @Tags Table
// @Accept json
// @Produce json
// @Param code path string true "Table code"
// @Param request body dto.UpdateTableRequest true "Fields to update"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{code} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTable")
	defer scope.End()

	req := dto.UpdateTableRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamCode)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update table")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "table updated successfully")
}

// RepositionTable moves a table on the canvas.
// @Summary Reposition a table
// @Tags Table
// @Accept json
// @Produce json
// @Param code path string true "Table code"
// @Param request body dto.RepositionTableRequest true "Coordinates"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{code}/position [post]
// @Security BearerAuth
func (handler *Handler) RepositionTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RepositionTable")
	defer scope.End()

	req := dto.RepositionTableRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Reposition(ctx, req, chi.URLParam(r, constant.RequestParamCode)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reposition table")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "table repositioned successfully")
}

// DeleteTable deactivates a table.
// @Summary Delete a table
// @Tags Table
// @Produce json
// @Param code path string true "Table code"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{code} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTable")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)

	if err := handler.service.Delete(ctx, code); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete table")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Table " + code + " deleted by user " + user)

	response.WithMessage(w, http.StatusOK, "table deleted successfully")
}
