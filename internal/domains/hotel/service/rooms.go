package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"himalayandays/internal/domains/hotel/model"
	"himalayandays/internal/domains/hotel/model/dto"
	"himalayandays/shared"
	"himalayandays/shared/constant"
	gDto "himalayandays/shared/dto"
	"himalayandays/shared/failure"
)

func (s *serviceImpl) CreateRoomType(ctx context.Context, req dto.CreateRoomTypeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRoomType")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	hotel, err := s.repo.Get(ctx, shared.FilterByID(req.HotelID, model.FieldID, model.HotelTableName))
	if err != nil {
		return fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty || hotel.Trashed() {
		return failure.BadRequestFromString("hotel does not exist") //nolint:wrapcheck
	}

	if err = s.roomRepo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create room type")

		return fmt.Errorf("failed to create room type: %w", err)
	}

	s.invalidateHotelCaches(ctx, req.HotelID)

	return nil
}

func (s *serviceImpl) GetRoomTypes(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomTypesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomTypes")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.roomRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room types")

		return res, fmt.Errorf("failed to count room types: %w", err)
	}

	roomTypes, err := s.roomRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return res, fmt.Errorf("failed to get room types: %w", err)
	}

	res.FromModels(roomTypes, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) GetRoomType(ctx context.Context, id string) (res dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomType")
	defer scope.End()
	defer scope.TraceIfError(err)

	roomType, err := s.roomRepo.Get(ctx, shared.FilterByID(id, model.FieldID, model.RoomTypeTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return res, failure.NotFound("room type not found") //nolint:wrapcheck
	}

	res.FromModel(roomType)

	return res, nil
}

func (s *serviceImpl) UpdateRoomType(ctx context.Context, req dto.UpdateRoomTypeRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateRoomType")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateRoomTypeRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.RoomTypeTableName)

	exist, err := s.roomRepo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if room type exists: %w", err)
	}

	if !exist {
		return failure.NotFound("room type not found") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.roomRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room type")

		return fmt.Errorf("failed to update room type: %w", err)
	}

	return nil
}

func (s *serviceImpl) DeleteRoomType(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteRoomType")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.RoomTypeTableName)

	exist, err := s.roomRepo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if room type exists: %w", err)
	}

	if !exist {
		return failure.NotFound("room type not found") //nolint:wrapcheck
	}

	if err := s.roomRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room type")

		return fmt.Errorf("failed to delete room type: %w", err)
	}

	return nil
}

func (s *serviceImpl) CreateRoomRate(ctx context.Context, req dto.CreateRoomRateRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRoomRate")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	rate, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse room rate request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	if rate.ValidFrom.After(rate.ValidTo) {
		return failure.BadRequestFromString("valid_from must not be after valid_to") //nolint:wrapcheck
	}

	exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(rate.RoomTypeID, model.FieldID, model.RoomTypeTableName))
	if err != nil {
		return fmt.Errorf("failed to check if room type exists: %w", err)
	}

	if !exist {
		return failure.BadRequestFromString("room type does not exist") //nolint:wrapcheck
	}

	// Overlapping windows for the same room type are rejected outright so
	// resolution never has to break a tie between competing prices.
	overlapping, err := s.rateRepo.Exist(ctx, rateWindowFilter(rate.RoomTypeID, rate.ValidFrom, rate.ValidTo))
	if err != nil {
		return fmt.Errorf("failed to check for overlapping rates: %w", err)
	}

	if overlapping {
		return failure.Conflict("a rate already covers part of this validity window") //nolint:wrapcheck
	}

	if err = s.rateRepo.Insert(ctx, rate); err != nil {
		log.Error().Err(err).Msg("failed to create room rate")

		return fmt.Errorf("failed to create room rate: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetRoomRates(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomRatesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomRates")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.rateRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room rates")

		return res, fmt.Errorf("failed to count room rates: %w", err)
	}

	rates, err := s.rateRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room rates")

		return res, fmt.Errorf("failed to get room rates: %w", err)
	}

	res.FromModels(rates, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) GetRoomRate(ctx context.Context, id string) (res dto.RoomRateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomRate")
	defer scope.End()
	defer scope.TraceIfError(err)

	rate, err := s.rateRepo.Get(ctx, shared.FilterByID(id, model.FieldID, model.RoomRateTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room rate")

		return res, fmt.Errorf("failed to get room rate: %w", err)
	}

	if rate.ID == constant.Empty {
		return res, failure.NotFound("room rate not found") //nolint:wrapcheck
	}

	res.FromModel(rate)

	return res, nil
}

func (s *serviceImpl) UpdateRoomRate(ctx context.Context, req dto.UpdateRoomRateRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateRoomRate")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateRoomRateRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	if req.BookingValidUntil != "" {
		if _, err := time.Parse(constant.DateOnlyFormat, req.BookingValidUntil); err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
		}
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.RoomRateTableName)

	exist, err := s.rateRepo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if room rate exists: %w", err)
	}

	if !exist {
		return failure.NotFound("room rate not found") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.rateRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room rate")

		return fmt.Errorf("failed to update room rate: %w", err)
	}

	return nil
}

func (s *serviceImpl) DeleteRoomRate(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteRoomRate")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.RoomRateTableName)

	exist, err := s.rateRepo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if room rate exists: %w", err)
	}

	if !exist {
		return failure.NotFound("room rate not found") //nolint:wrapcheck
	}

	if err := s.rateRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room rate")

		return fmt.Errorf("failed to delete room rate: %w", err)
	}

	return nil
}

// Resolve finds every rate whose validity window intersects the stay range
// and annotates each with booking eligibility at the as-of date. An empty
// result is not an error: it means no published price, contact sales.
func (s *serviceImpl) Resolve(ctx context.Context, roomTypeID string, stayFrom, stayTo, asOf time.Time) (res dto.ResolveRatesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	if stayFrom.After(stayTo) {
		return res, failure.BadRequestFromString("stay_from must not be after stay_to") //nolint:wrapcheck
	}

	roomType, err := s.roomRepo.Get(ctx, shared.FilterByID(roomTypeID, model.FieldID, model.RoomTypeTableName))
	if err != nil {
		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return res, failure.NotFound("room type not found") //nolint:wrapcheck
	}

	hotel, err := s.repo.Get(ctx, shared.FilterByID(roomType.HotelID, model.FieldID, model.HotelTableName))
	if err != nil {
		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty || hotel.Trashed() {
		return res, failure.NotFound("hotel not found") //nolint:wrapcheck
	}

	rates, err := s.rateRepo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldValidFrom, SortDir: gDto.SortDirAsc}, rateWindowFilter(roomTypeID, stayFrom, stayTo))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room rates for stay range")

		return res, fmt.Errorf("failed to get room rates: %w", err)
	}

	res.Rates = make([]dto.ResolvedRate, len(rates))
	for i, rate := range rates {
		res.Rates[i].FromModel(rate)
		res.Rates[i].Bookable = rate.BookableAt(asOf, hotel.RateValidUntil)
	}

	return res, nil
}

// rateWindowFilter matches rates of the room type whose [valid_from, valid_to]
// intersects [from, to]: valid_from <= to AND valid_to >= from.
func rateWindowFilter(roomTypeID string, from, to time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomTypeID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomTypeID,
				Table:    model.RoomRateTableName,
			},
			gDto.Filter{
				Field:    model.FieldValidFrom,
				Operator: gDto.FilterOperatorLessEq,
				Value:    to,
				Table:    model.RoomRateTableName,
			},
			gDto.Filter{
				Field:    model.FieldValidTo,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    from,
				Table:    model.RoomRateTableName,
			},
		},
	}
}
