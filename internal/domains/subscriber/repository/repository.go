package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"himalayandays/infras/otel"
	"himalayandays/infras/postgres"
	"himalayandays/internal/domains/subscriber/model"
	"himalayandays/shared"
	"himalayandays/shared/constant"
	gDto "himalayandays/shared/dto"
	"himalayandays/shared/logger"
	gRepo "himalayandays/shared/repository"
	"himalayandays/shared/timezone"
)

type Subscriber interface {
	Insert(ctx context.Context, model model.Subscriber) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Subscriber, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Subscriber, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Subscribe(ctx context.Context, sub model.Subscriber) (model.SubscribeOutcome, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Subscriber]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Subscriber {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Subscriber](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Subscribe runs the reactivate-or-create flow in one transaction. The row is
// locked between the existence check and the write so two concurrent
// subscribes with the same email cannot both insert.
func (r *repositoryImpl) Subscribe(ctx context.Context, sub model.Subscriber) (model.SubscribeOutcome, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".subscriber.Subscribe")
	defer scope.End()

	tx, err := r.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return "", fmt.Errorf("failed to begin transaction (subscriber): %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	var existing struct {
		ID       string `db:"id"`
		IsActive bool   `db:"is_active"`
	}

	query := fmt.Sprintf("SELECT id, is_active FROM %s WHERE email = $1 FOR UPDATE", model.TableName)

	err = tx.GetContext(ctx, &existing, query, sub.Email)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if err := r.InsertTx(ctx, tx, sub); err != nil {
			scope.TraceError(err)

			return "", fmt.Errorf("failed to insert subscriber: %w", err)
		}

		if err := tx.Commit(); err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return "", fmt.Errorf("failed to commit transaction (subscriber): %w", err)
		}

		return model.OutcomeCreated, nil
	case err != nil:
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return "", fmt.Errorf("failed to get subscriber (subscriber): %w", err)
	case existing.IsActive:
		return model.OutcomeAlreadyActive, nil
	}

	fields := map[string]any{
		model.FieldIsActive:       true,
		model.FieldSubscribedAt:   timezone.Now(),
		model.FieldUnsubscribedAt: nil,
		constant.FieldModifiedAt:  timezone.Now(),
	}

	if err := r.UpdateTx(ctx, tx, fields, shared.FilterByID(existing.ID, model.FieldID, model.TableName)); err != nil {
		scope.TraceError(err)

		return "", fmt.Errorf("failed to reactivate subscriber: %w", err)
	}

	if err := tx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return "", fmt.Errorf("failed to commit transaction (subscriber): %w", err)
	}

	return model.OutcomeReactivated, nil
}
