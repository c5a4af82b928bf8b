package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"himalayandays/config"
	"himalayandays/infras/otel"
	"himalayandays/internal/domains/subscriber/model"
	"himalayandays/internal/domains/subscriber/model/dto"
	"himalayandays/internal/domains/subscriber/repository"
	"himalayandays/shared"
	"himalayandays/shared/cache"
	"himalayandays/shared/constant"
	gDto "himalayandays/shared/dto"
	"himalayandays/shared/failure"
	"himalayandays/shared/timezone"
)

const (
	cacheGetAllSubscriber = "subscriber:gets"
	cacheCountSubscriber  = "subscriber:count"
)

type Subscriber interface {
	Subscribe(ctx context.Context, req dto.SubscribeRequest) (dto.SubscribeResponse, error)
	Unsubscribe(ctx context.Context, req dto.UnsubscribeRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSubscribersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Subscriber
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Subscriber, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Subscriber {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Subscribe adds an email to the mailing list. A previously unsubscribed
// email is silently reactivated; an already-active one is a conflict.
func (s *serviceImpl) Subscribe(ctx context.Context, req dto.SubscribeRequest) (res dto.SubscribeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Subscribe")
	defer scope.End()
	defer scope.TraceIfError(err)

	outcome, err := s.repo.Subscribe(ctx, req.ToModel())
	if err != nil {
		log.Error().Err(err).Msg("failed to subscribe")

		return res, fmt.Errorf("failed to subscribe: %w", err)
	}

	if outcome == model.OutcomeAlreadyActive {
		return res, failure.Conflict("email is already subscribed") //nolint:wrapcheck
	}

	res.Email = req.Email
	res.Reactivated = outcome == model.OutcomeReactivated

	s.invalidateSubscriberCaches(ctx)

	return res, nil
}

// Unsubscribe deactivates a subscriber. Unsubscribing an already-inactive
// email is a no-op so a stale unsubscribe link never errors.
func (s *serviceImpl) Unsubscribe(ctx context.Context, req dto.UnsubscribeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Unsubscribe")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(req.Email, model.FieldEmail, model.TableName)

	subscriber, err := s.repo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get subscriber: %w", err)
	}

	if subscriber.ID == constant.Empty {
		return failure.NotFound("subscriber not found") //nolint:wrapcheck
	}

	if !subscriber.IsActive {
		return nil
	}

	fields := map[string]any{
		model.FieldIsActive:       false,
		model.FieldUnsubscribedAt: timezone.Now(),
		constant.FieldModifiedAt:  timezone.Now(),
	}

	if err := s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to unsubscribe")

		return fmt.Errorf("failed to unsubscribe: %w", err)
	}

	s.invalidateSubscriberCaches(ctx)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSubscribersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSubscriber, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count subscribers")

		return res, fmt.Errorf("failed to count subscribers: %w", err)
	}

	subscribers, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get subscribers")

		return res, fmt.Errorf("failed to get subscribers: %w", err)
	}

	res.FromModels(subscribers, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save subscribers to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountSubscriber, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count subscribers")

		return res, fmt.Errorf("failed to count subscribers: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save subscriber count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if subscriber exists: %w", err)
	}

	if !exist {
		return failure.NotFound("subscriber not found") //nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete subscriber")

		return fmt.Errorf("failed to delete subscriber: %w", err)
	}

	s.invalidateSubscriberCaches(ctx)

	return nil
}

func (s *serviceImpl) invalidateSubscriberCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllSubscriber)
		shared.InvalidateCaches(c, s.cache, cacheCountSubscriber)
	}()
}
