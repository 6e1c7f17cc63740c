package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"floorplan/infras/otel"
	"floorplan/infras/postgres"
	"floorplan/internal/domains/user/model"
	"floorplan/shared/constant"
	gDto "floorplan/shared/dto"
	gRepo "floorplan/shared/repository"
)

// User stores staff accounts. Lookups go through the Active* filters of the
// model package so deactivated accounts never authenticate.
type User interface {
	Insert(ctx context.Context, user model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	RecordLogin(ctx context.Context, user model.User, at time.Time, rehashed string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// RecordLogin stamps last_login on an active account. A non-empty rehashed
// replaces the stored password hash in the same statement.
func (r *repositoryImpl) RecordLogin(ctx context.Context, user model.User, at time.Time, rehashed string) error {
	fields := map[string]any{
		model.FieldLastLogin:     at,
		constant.FieldModifiedAt: at,
		constant.FieldModifiedBy: user.Username,
	}

	if rehashed != constant.Empty {
		fields[model.FieldPassword] = rehashed
	}

	return r.Update(ctx, fields, model.ActiveByID(user.ID)) //nolint:wrapcheck
}
