package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"himalayandays/config"
	"himalayandays/infras/otel"
	"himalayandays/internal/domains/booking/model"
	"himalayandays/internal/domains/booking/model/dto"
	"himalayandays/internal/domains/booking/repository"
	inquiryService "himalayandays/internal/domains/inquiry/service"
	"himalayandays/shared"
	"himalayandays/shared/cache"
	"himalayandays/shared/constant"
	gDto "himalayandays/shared/dto"
	"himalayandays/shared/failure"
)

const (
	cacheGetAllBooking  = "booking:gets"
	cacheCountBooking   = "booking:count"
	cacheGetAllCustomer = "customer:gets"
	cacheCountCustomer  = "customer:count"
)

type Booking interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) error
	GetCustomers(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCustomersResponse, error)
	GetCustomer(ctx context.Context, id string) (dto.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, req dto.UpdateCustomerRequest, id string) error
	DeleteCustomer(ctx context.Context, id string) error

	Create(ctx context.Context, req dto.CreateBookingRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, id string) (dto.BookingSummaryResponse, error)

	AddPayment(ctx context.Context, req dto.CreatePaymentRequest) error
	UpdatePayment(ctx context.Context, req dto.UpdatePaymentRequest, id string) error
	DeletePayment(ctx context.Context, id string) error

	AddExpense(ctx context.Context, req dto.CreateExpenseRequest) error
	UpdateExpense(ctx context.Context, req dto.UpdateExpenseRequest, id string) error
	DeleteExpense(ctx context.Context, id string) error
}

type serviceImpl struct {
	customerRepo repository.Customer
	repo         repository.Booking
	paymentRepo  repository.Payment
	expenseRepo  repository.Expense
	inquiries    inquiryService.Inquiry
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	customerRepo repository.Customer,
	repo repository.Booking,
	paymentRepo repository.Payment,
	expenseRepo repository.Expense,
	inquiries inquiryService.Inquiry,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		customerRepo: customerRepo,
		repo:         repo,
		paymentRepo:  paymentRepo,
		expenseRepo:  expenseRepo,
		inquiries:    inquiries,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.customerRepo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create customer")

		return fmt.Errorf("failed to create customer: %w", err)
	}

	s.invalidateCaches(ctx, cacheGetAllCustomer, cacheCountCustomer)

	return nil
}

func (s *serviceImpl) GetCustomers(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCustomersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCustomers")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCustomer, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	customers, err := s.customerRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customers")

		return res, fmt.Errorf("failed to get customers: %w", err)
	}

	res.FromModels(customers, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customers to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetCustomer(ctx context.Context, id string) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	customer, err := s.customerRepo.Get(ctx, shared.FilterByID(id, model.FieldID, model.CustomerTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return res, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return res, failure.NotFound("customer not found") //nolint:wrapcheck
	}

	res.FromModel(customer)

	return res, nil
}

func (s *serviceImpl) UpdateCustomer(ctx context.Context, req dto.UpdateCustomerRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateCustomerRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.CustomerTableName)

	exist, err := s.customerRepo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !exist {
		return failure.NotFound("customer not found") //nolint:wrapcheck
	}

	if err := s.customerRepo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update customer")

		return fmt.Errorf("failed to update customer: %w", err)
	}

	s.invalidateCaches(ctx, cacheGetAllCustomer, cacheCountCustomer)

	return nil
}

// DeleteCustomer refuses to remove a customer that still owns bookings.
func (s *serviceImpl) DeleteCustomer(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.CustomerTableName)

	exist, err := s.customerRepo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !exist {
		return failure.NotFound("customer not found") //nolint:wrapcheck
	}

	hasBookings, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldCustomerID, model.BookingTableName))
	if err != nil {
		return fmt.Errorf("failed to check customer bookings: %w", err)
	}

	if hasBookings {
		return failure.Conflict("customer still has bookings") //nolint:wrapcheck
	}

	if err := s.customerRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete customer")

		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.invalidateCaches(ctx, cacheGetAllCustomer, cacheCountCustomer)

	return nil
}

// Create records a booking for an existing customer. When the booking
// originates from an inquiry, the inquiry is converted to WON first so an
// unconvertible inquiry blocks the booking.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		return failure.BadRequestFromString("trip dates must be valid dates (YYYY-MM-DD)") //nolint:wrapcheck
	}

	if booking.TripEnd.Before(booking.TripStart) {
		return failure.BadRequestFromString("trip_end cannot be before trip_start") //nolint:wrapcheck
	}

	customerExist, err := s.customerRepo.Exist(ctx, shared.FilterByID(req.CustomerID, model.FieldID, model.CustomerTableName))
	if err != nil {
		return fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !customerExist {
		return failure.NotFound("customer not found") //nolint:wrapcheck
	}

	if req.InquiryID != constant.Empty {
		if err := s.inquiries.ConvertWon(ctx, req.InquiryID); err != nil {
			return fmt.Errorf("failed to convert inquiry: %w", err)
		}
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", err)
	}

	s.invalidateCaches(ctx, cacheGetAllBooking, cacheCountBooking)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.BookingTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.BookingTableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") //nolint:wrapcheck
	}

	if err := s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidateCaches(ctx, cacheGetAllBooking, cacheCountBooking)

	return nil
}

// Delete removes a booking with its whole ledger. Hard delete: ledger rows
// are corrections, not archival data.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.BookingTableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") //nolint:wrapcheck
	}

	if err := s.paymentRepo.Delete(ctx, shared.FilterByID(id, model.FieldBookingID, model.PaymentTableName)); err != nil {
		return fmt.Errorf("failed to delete booking payments: %w", err)
	}

	if err := s.expenseRepo.Delete(ctx, shared.FilterByID(id, model.FieldBookingID, model.ExpenseTableName)); err != nil {
		return fmt.Errorf("failed to delete booking expenses: %w", err)
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidateCaches(ctx, cacheGetAllBooking, cacheCountBooking)

	return nil
}

// Summary recomputes the ledger from the payment and expense rows. Nothing
// here is cached: deleting a payment must be visible on the next read.
func (s *serviceImpl) Summary(ctx context.Context, id string) (res dto.BookingSummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.BookingTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	ledgerParams := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	payments, err := s.paymentRepo.GetAll(ctx, ledgerParams, shared.FilterByID(id, model.FieldBookingID, model.PaymentTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking payments")

		return res, fmt.Errorf("failed to get booking payments: %w", err)
	}

	expenses, err := s.expenseRepo.GetAll(ctx, ledgerParams, shared.FilterByID(id, model.FieldBookingID, model.ExpenseTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking expenses")

		return res, fmt.Errorf("failed to get booking expenses: %w", err)
	}

	res.BookingID = booking.ID
	res.TripCost = booking.TripCost

	res.Payments = make([]dto.PaymentResponse, len(payments))
	for i, payment := range payments {
		res.Payments[i].FromModel(payment)
		res.TotalPaid += payment.Amount
	}

	res.Expenses = make([]dto.ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		res.Expenses[i].FromModel(expense)
		res.TotalExpenses += expense.Amount
		res.TotalExpenseCost += expense.TotalCost
	}

	res.Outstanding = res.TripCost - res.TotalPaid

	return res, nil
}

func (s *serviceImpl) AddPayment(ctx context.Context, req dto.CreatePaymentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	payment, err := req.ToModel(user)
	if err != nil {
		return failure.BadRequestFromString("paid_at must be a valid date (YYYY-MM-DD)") //nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(req.BookingID, model.FieldID, model.BookingTableName))
	if err != nil {
		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") //nolint:wrapcheck
	}

	if err = s.paymentRepo.Insert(ctx, payment); err != nil {
		log.Error().Err(err).Msg("failed to add payment")

		return fmt.Errorf("failed to add payment: %w", err)
	}

	return nil
}

func (s *serviceImpl) UpdatePayment(ctx context.Context, req dto.UpdatePaymentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdatePaymentRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.PaymentTableName)

	exist, err := s.paymentRepo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if payment exists: %w", err)
	}

	if !exist {
		return failure.NotFound("payment not found") //nolint:wrapcheck
	}

	if err := s.paymentRepo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update payment")

		return fmt.Errorf("failed to update payment: %w", err)
	}

	return nil
}

// DeletePayment is permanent; the booking's outstanding balance grows back
// by the deleted amount on the next summary read.
func (s *serviceImpl) DeletePayment(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeletePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.PaymentTableName)

	exist, err := s.paymentRepo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if payment exists: %w", err)
	}

	if !exist {
		return failure.NotFound("payment not found") //nolint:wrapcheck
	}

	if err := s.paymentRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete payment")

		return fmt.Errorf("failed to delete payment: %w", err)
	}

	return nil
}

func (s *serviceImpl) AddExpense(ctx context.Context, req dto.CreateExpenseRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddExpense")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	expense, err := req.ToModel(user)
	if err != nil {
		return failure.BadRequestFromString("spent_at must be a valid date (YYYY-MM-DD)") //nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(req.BookingID, model.FieldID, model.BookingTableName))
	if err != nil {
		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") //nolint:wrapcheck
	}

	if err = s.expenseRepo.Insert(ctx, expense); err != nil {
		log.Error().Err(err).Msg("failed to add expense")

		return fmt.Errorf("failed to add expense: %w", err)
	}

	return nil
}

func (s *serviceImpl) UpdateExpense(ctx context.Context, req dto.UpdateExpenseRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateExpense")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateExpenseRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.ExpenseTableName)

	exist, err := s.expenseRepo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if expense exists: %w", err)
	}

	if !exist {
		return failure.NotFound("expense not found") //nolint:wrapcheck
	}

	if err := s.expenseRepo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update expense")

		return fmt.Errorf("failed to update expense: %w", err)
	}

	return nil
}

func (s *serviceImpl) DeleteExpense(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteExpense")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.ExpenseTableName)

	exist, err := s.expenseRepo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if expense exists: %w", err)
	}

	if !exist {
		return failure.NotFound("expense not found") //nolint:wrapcheck
	}

	if err := s.expenseRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete expense")

		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return nil
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, prefixes ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, prefix := range prefixes {
			shared.InvalidateCaches(c, s.cache, prefix)
		}
	}()
}
