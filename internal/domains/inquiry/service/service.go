package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"himalayandays/config"
	"himalayandays/infras/kafka"
	"himalayandays/infras/otel"
	"himalayandays/infras/telegram"
	"himalayandays/internal/domains/inquiry/model"
	"himalayandays/internal/domains/inquiry/model/dto"
	"himalayandays/internal/domains/inquiry/repository"
	"himalayandays/shared"
	"himalayandays/shared/cache"
	"himalayandays/shared/constant"
	gDto "himalayandays/shared/dto"
	"himalayandays/shared/failure"
	"himalayandays/shared/timezone"
)

const (
	cacheGetInquiry    = "inquiry:get"
	cacheGetAllInquiry = "inquiry:gets"
	cacheCountInquiry  = "inquiry:count"

	relayTimeout = 15 * time.Second
)

type Inquiry interface {
	Create(ctx context.Context, req dto.CreateInquiryRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInquiriesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.InquiryResponse, error)
	Update(ctx context.Context, req dto.UpdateInquiryRequest, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
	ConvertWon(ctx context.Context, id string) error
	MarkRead(ctx context.Context, id string) error
	Trash(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	Purge(ctx context.Context, id string) error
	CheckForNew(ctx context.Context, since int64) (dto.CheckForNewResponse, error)
}

type serviceImpl struct {
	repo     repository.Inquiry
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	notifier telegram.Notifier
	events   kafka.Client
}

func New(repo repository.Inquiry, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, notifier telegram.Notifier, events kafka.Client) Inquiry {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		notifier: notifier,
		events:   events,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateInquiryRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	inquiry := req.ToModel(user)

	if err = s.repo.Insert(ctx, inquiry); err != nil {
		log.Error().Err(err).Msg("failed to create inquiry")

		return fmt.Errorf("failed to create inquiry: %w", err)
	}

	// Relay and event publishing are fire-and-forget: a broken channel must
	// never fail the submitter's request.
	go s.relayCreated(context.WithoutCancel(ctx), req, inquiry)

	s.invalidateInquiryCaches(ctx)

	return nil
}

func (s *serviceImpl) relayCreated(ctx context.Context, req dto.CreateInquiryRequest, inquiry model.Inquiry) {
	ctx, cancel := context.WithTimeout(ctx, relayTimeout)
	defer cancel()

	if err := s.notifier.Send(ctx, req.RelayText()); err != nil {
		log.Error().Err(err).Str("inquiry_id", inquiry.ID).Msg("failed to relay inquiry to operations channel")
	}

	topic := s.cfg.Kafka.Topics.InquiryCreated
	if topic == constant.Empty {
		return
	}

	err := s.events.SendMessages(ctx, topic, kafka.Message{
		Key:   inquiry.ID,
		Value: inquiry,
	})
	if err != nil {
		log.Error().Err(err).Str("inquiry_id", inquiry.ID).Msg("failed to publish inquiry created event")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInquiriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllInquiry, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for inquiries")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count inquiries")

		return res, fmt.Errorf("failed to count inquiries: %w", err)
	}

	inquiries, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get inquiries")

		return res, fmt.Errorf("failed to get inquiries: %w", err)
	}

	res.FromModels(inquiries, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save inquiries to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountInquiry, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count inquiries")

		return res, fmt.Errorf("failed to count inquiries: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save inquiry count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.InquiryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	inquiry, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get inquiry")

		return res, fmt.Errorf("failed to get inquiry: %w", err)
	}

	if inquiry.ID == constant.Empty {
		return res, failure.NotFound("inquiry not found") //nolint:wrapcheck
	}

	res.FromModel(inquiry)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateInquiryRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateInquiryRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if inquiry exists: %w", err)
	}

	if !exist {
		return failure.NotFound("inquiry not found") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update inquiry")

		return fmt.Errorf("failed to update inquiry: %w", err)
	}

	s.invalidateInquiryCaches(ctx)

	return nil
}

// UpdateStatus drives the pipeline state machine. Setting the current status
// again is an idempotent no-op; an illegal transition is rejected.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	inquiry, err := s.repo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get inquiry: %w", err)
	}

	if inquiry.ID == constant.Empty {
		return failure.NotFound("inquiry not found") //nolint:wrapcheck
	}

	if inquiry.Status == req.Status {
		return nil
	}

	if !model.CanTransition(inquiry.Status, req.Status) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot move inquiry from %s to %s", inquiry.Status, req.Status)) //nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update inquiry status")

		return fmt.Errorf("failed to update inquiry status: %w", err)
	}

	s.invalidateInquiryCaches(ctx)

	return nil
}

// ConvertWon marks an inquiry WON when a booking is created from it.
// Conversion skips the intermediate pipeline stages, but a LOST or SPAM
// inquiry cannot be converted.
func (s *serviceImpl) ConvertWon(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConvertWon")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	inquiry, err := s.repo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get inquiry: %w", err)
	}

	if inquiry.ID == constant.Empty || inquiry.Trashed() {
		return failure.NotFound("inquiry not found") //nolint:wrapcheck
	}

	if inquiry.Status == model.StatusWon {
		return nil
	}

	if inquiry.Status == model.StatusLost || inquiry.Status == model.StatusSpam {
		return failure.BadRequestFromString(fmt.Sprintf("cannot convert a %s inquiry", inquiry.Status)) //nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldStatus:        model.StatusWon,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to convert inquiry")

		return fmt.Errorf("failed to convert inquiry: %w", err)
	}

	s.invalidateInquiryCaches(ctx)

	return nil
}

func (s *serviceImpl) MarkRead(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkRead")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if inquiry exists: %w", err)
	}

	if !exist {
		return failure.NotFound("inquiry not found") //nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldIsRead:        true,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to mark inquiry as read")

		return fmt.Errorf("failed to mark inquiry as read: %w", err)
	}

	s.invalidateInquiryCaches(ctx)

	return nil
}

func (s *serviceImpl) Trash(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Trash")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	inquiry, err := s.repo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get inquiry: %w", err)
	}

	if inquiry.ID == constant.Empty {
		return failure.NotFound("inquiry not found") //nolint:wrapcheck
	}

	if inquiry.Trashed() {
		return nil
	}

	fields := map[string]any{
		model.FieldDeletedAt:     timezone.Now(),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to trash inquiry")

		return fmt.Errorf("failed to trash inquiry: %w", err)
	}

	s.invalidateInquiryCaches(ctx)

	return nil
}

func (s *serviceImpl) Restore(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Restore")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	inquiry, err := s.repo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get inquiry: %w", err)
	}

	if inquiry.ID == constant.Empty {
		return failure.NotFound("inquiry not found") //nolint:wrapcheck
	}

	if !inquiry.Trashed() {
		return nil
	}

	fields := map[string]any{
		model.FieldDeletedAt:     nil,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to restore inquiry")

		return fmt.Errorf("failed to restore inquiry: %w", err)
	}

	s.invalidateInquiryCaches(ctx)

	return nil
}

// Purge permanently removes a trashed inquiry.
func (s *serviceImpl) Purge(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Purge")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	inquiry, err := s.repo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get inquiry: %w", err)
	}

	if inquiry.ID == constant.Empty {
		return failure.NotFound("inquiry not found") //nolint:wrapcheck
	}

	if !inquiry.Trashed() {
		return failure.BadRequestFromString("inquiry must be trashed before it can be purged") //nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to purge inquiry")

		return fmt.Errorf("failed to purge inquiry: %w", err)
	}

	s.invalidateInquiryCaches(ctx)

	return nil
}

// CheckForNew counts non-trashed inquiries created after the given unix-milli
// cursor. The returned timestamp is the newest created_at among the counted
// rows, so a client polling with it back never sees the same rows again.
func (s *serviceImpl) CheckForNew(ctx context.Context, since int64) (res dto.CheckForNewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckForNew")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.NewTimestamp = since

	// Strictly-after semantics at millisecond granularity.
	filter := newSinceFilter(time.UnixMilli(since + 1))

	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count new inquiries")

		return res, fmt.Errorf("failed to count new inquiries: %w", err)
	}

	if count == 0 {
		return res, nil
	}

	newest, err := s.repo.GetAll(ctx, gDto.QueryParams{Limit: 1, SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirDesc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get newest inquiry")

		return res, fmt.Errorf("failed to get newest inquiry: %w", err)
	}

	res.HasNew = true
	res.Count = count

	if len(newest) > 0 {
		res.NewTimestamp = newest[0].CreatedAt.UnixMilli()
	}

	return res, nil
}

func newSinceFilter(since time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldDeletedAt,
				Operator: gDto.FilterIsNull,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "since",
				Field:    model.FieldCreatedAt,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    since,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) invalidateInquiryCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllInquiry)
		shared.InvalidateCaches(c, s.cache, cacheCountInquiry)
	}()
}
