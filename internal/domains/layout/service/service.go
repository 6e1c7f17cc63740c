package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"floorplan/infras/otel"
	"floorplan/infras/s3"
	"floorplan/internal/domains/layout/model"
	"floorplan/internal/domains/layout/model/dto"
	"floorplan/internal/domains/layout/repository"
	tableModel "floorplan/internal/domains/table/model"
	tableDto "floorplan/internal/domains/table/model/dto"
	tableRepo "floorplan/internal/domains/table/repository"
	tableService "floorplan/internal/domains/table/service"
	"floorplan/shared"
	"floorplan/shared/cache"
	"floorplan/shared/constant"
	"floorplan/shared/failure"
	gModel "floorplan/shared/model"
	"floorplan/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Layout interface {
	Export(ctx context.Context, req tableDto.FloorPlanRequest) (model.Layout, error)
	Backup(ctx context.Context, req tableDto.FloorPlanRequest) (dto.BackupResponse, error)
	Import(ctx context.Context, path string) (dto.ImportResponse, error)
	ImportBackup(ctx context.Context, url string) (dto.ImportResponse, error)
}

type serviceImpl struct {
	repo      repository.Layout
	tables    tableService.Table
	tableRepo tableRepo.Table
	storage   s3.S3
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Layout,
	tables tableService.Table,
	tableRepo tableRepo.Table,
	storage s3.S3,
	cache cache.RedisCache,
	otel otel.Otel,
) Layout {
	return &serviceImpl{
		repo:      repo,
		tables:    tables,
		tableRepo: tableRepo,
		storage:   storage,
		cache:     cache,
		otel:      otel,
	}
}

// Export writes the current floor plan to the layout file and returns it. A floor plan that
// was itself served from the file is returned as is and not written back.
func (s *serviceImpl) Export(ctx context.Context, req tableDto.FloorPlanRequest) (res model.Layout, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".layout.Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	plan, err := s.tables.FloorPlan(ctx, req)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	res = snapshot(plan)

	if plan.Degraded {
		log.Warn().Str("date", plan.Date).Msg("floor plan is degraded, layout file left untouched")

		return res, nil
	}

	if err = s.repo.Save(ctx, res); err != nil {
		log.Error().Err(err).Msg("failed to save layout")

		return res, fmt.Errorf("failed to save layout: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Backup(ctx context.Context, req tableDto.FloorPlanRequest) (res dto.BackupResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".layout.Backup")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	plan, err := s.tables.FloorPlan(ctx, req)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	layout := snapshot(plan)

	raw, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return res, fmt.Errorf("failed to encode layout: %w", err)
	}

	name := model.ObjectName(layout.Date, layout.Shift, timezone.Now().Unix())

	url, err := s.storage.UploadFileBytes(ctx, model.ObjectPrefix, name, constant.ContentTypeJSON, raw)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload layout backup")

		return res, fmt.Errorf("failed to upload layout backup: %w", err)
	}

	res.URL = url
	res.Key = model.ObjectPrefix + "/" + name

	return res, nil
}

func (s *serviceImpl) Import(ctx context.Context, path string) (res dto.ImportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".layout.Import")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	layout, err := s.repo.LoadFrom(ctx, path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to load layout")

		return res, fmt.Errorf("failed to load layout: %w", err)
	}

	return s.importTables(ctx, layout)
}

func (s *serviceImpl) ImportBackup(ctx context.Context, url string) (res dto.ImportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".layout.ImportBackup")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	raw, err := s.storage.DownloadFile(ctx, s.storage.GetObjectNameFromURL(url))
	if err != nil {
		return res, fmt.Errorf("failed to download layout backup: %w", err)
	}

	layout, err := model.Parse(raw)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid layout backup: %v", err)) // nolint:wrapcheck
	}

	return s.importTables(ctx, layout)
}

// importTables upserts every entry by code. Entries without a code or a positive capacity are skipped.
func (s *serviceImpl) importTables(ctx context.Context, layout model.Layout) (res dto.ImportResponse, err error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = constant.ContextSystem
	}

	res.Skipped = []string{}

	for _, entry := range layout.Tables {
		table, ok := toTable(entry, user)
		if !ok {
			log.Warn().Str("id", entry.ID).Int("capacity", entry.Capacity).Msg("skipping layout entry")

			res.Skipped = append(res.Skipped, entry.ID)

			continue
		}

		if err = s.tableRepo.Upsert(ctx, table, tableModel.FieldCode); err != nil {
			log.Error().Err(err).Str("code", table.Code).Msg("failed to import table")

			return res, fmt.Errorf("failed to import table %s: %w", table.Code, err)
		}

		res.Imported++
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, tableModel.CacheGetTable)
		shared.InvalidateCaches(c, s.cache, tableModel.CacheFloorPlan)
	}()

	return res, nil
}

func toTable(entry tableDto.TableStatusResponse, user string) (tableModel.Table, bool) {
	code := strings.ToUpper(strings.TrimSpace(entry.ID))
	if code == constant.Empty || entry.Capacity <= 0 {
		return tableModel.Table{}, false
	}

	zone, err := tableModel.ParseZone(string(entry.Zone))
	if err != nil {
		zone = tableModel.ZoneInterior
	}

	name := entry.Name
	if name == constant.Empty {
		name = code
	}

	return tableModel.Table{
		ID:       uuid.NewString(),
		Code:     code,
		Name:     name,
		Capacity: entry.Capacity,
		Zone:     zone,
		PosX:     entry.X,
		PosY:     entry.Y,
		Rotation: entry.Rotation,
		Active:   true,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}, true
}

func snapshot(plan tableDto.FloorPlanResponse) model.Layout {
	return model.Layout{
		GeneratedAt: timezone.Format(timezone.Now(), constant.DateFormat),
		Date:        plan.Date,
		Shift:       plan.Shift.String(),
		Tables:      plan.Tables,
	}
}
