package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"floorplan/config"
	"floorplan/infras/otel"
	"floorplan/internal/domains/layout/model"
	"floorplan/shared/constant"
)

const filePerm = 0o644

// Layout persists layout snapshots as a JSON file. It carries no business rules.
type Layout interface {
	Load(ctx context.Context) (model.Layout, error)
	LoadFrom(ctx context.Context, path string) (model.Layout, error)
	Save(ctx context.Context, layout model.Layout) error
}

type repositoryImpl struct {
	path string
	mu   sync.RWMutex
	otel otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Layout {
	return &repositoryImpl{
		path: cfg.Restaurant.LayoutFile,
		otel: otel,
	}
}

func (r *repositoryImpl) Load(ctx context.Context) (model.Layout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.LoadFrom(ctx, r.path)
}

func (r *repositoryImpl) LoadFrom(ctx context.Context, path string) (layout model.Layout, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".layout.Load")
	defer scope.End()

	scope.SetAttribute("layout.path", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		scope.TraceError(err)

		return layout, fmt.Errorf("failed to read layout file: %w", err)
	}

	if layout, err = model.Parse(raw); err != nil {
		scope.TraceError(err)

		return layout, fmt.Errorf("failed to decode layout file: %w", err)
	}

	return layout, nil
}

// Save replaces the layout file through a rename so readers never see a partial file.
func (r *repositoryImpl) Save(ctx context.Context, layout model.Layout) error {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".layout.Save")
	defer scope.End()

	scope.SetAttribute("layout.path", r.path)

	raw, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to encode layout: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err = os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to create layout directory: %w", err)
	}

	tmp := r.path + ".tmp"
	if err = os.WriteFile(tmp, raw, filePerm); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to write layout file: %w", err)
	}

	if err = os.Rename(tmp, r.path); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to replace layout file: %w", err)
	}

	return nil
}
