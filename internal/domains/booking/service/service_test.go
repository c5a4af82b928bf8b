package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"himalayandays/config"
	"himalayandays/infras/otel/mocks"
	bookingMocks "himalayandays/internal/domains/booking/mocks"
	"himalayandays/internal/domains/booking/model"
	"himalayandays/internal/domains/booking/model/dto"
	"himalayandays/internal/domains/booking/service"
	inquiryServiceMocks "himalayandays/internal/domains/inquiry/service/mocks"
	cacheMocks "himalayandays/shared/cache/mocks"
)

type bookingFixture struct {
	customerRepo *bookingMocks.MockCustomer
	repo         *bookingMocks.MockBooking
	paymentRepo  *bookingMocks.MockPayment
	expenseRepo  *bookingMocks.MockExpense
	inquiries    *inquiryServiceMocks.MockInquiry
	cache        *cacheMocks.MockRedisCache
	svc          service.Booking
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &bookingFixture{
		customerRepo: bookingMocks.NewMockCustomer(ctrl),
		repo:         bookingMocks.NewMockBooking(ctrl),
		paymentRepo:  bookingMocks.NewMockPayment(ctrl),
		expenseRepo:  bookingMocks.NewMockExpense(ctrl),
		inquiries:    inquiryServiceMocks.NewMockInquiry(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	// Cache invalidation happens on a goroutine after writes.
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.customerRepo, f.repo, f.paymentRepo, f.expenseRepo, f.inquiries, &config.Config{}, f.cache, mocks.NewOtel())

	return f
}

func TestBookingService_Create(t *testing.T) {
	baseReq := dto.CreateBookingRequest{
		CustomerID: "cust-1",
		Title:      "Annapurna Base Camp trek",
		TripStart:  "2026-10-05",
		TripEnd:    "2026-10-15",
		TripCost:   120000,
	}

	t.Run("booking without an inquiry", func(t *testing.T) {
		f := newBookingFixture(t)

		f.customerRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.Create(context.Background(), baseReq)
		assert.NoError(t, err)
	})

	t.Run("inquiry converted before insert", func(t *testing.T) {
		f := newBookingFixture(t)

		req := baseReq
		req.InquiryID = "inq-1"

		f.customerRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		gomock.InOrder(
			f.inquiries.EXPECT().
				ConvertWon(gomock.Any(), "inq-1").
				Return(nil),
			f.repo.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				Return(nil),
		)

		err := f.svc.Create(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("unconvertible inquiry blocks the booking", func(t *testing.T) {
		f := newBookingFixture(t)

		req := baseReq
		req.InquiryID = "inq-lost"

		f.customerRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.inquiries.EXPECT().
			ConvertWon(gomock.Any(), "inq-lost").
			Return(errors.New("cannot convert a LOST inquiry"))

		err := f.svc.Create(context.Background(), req)
		assert.Error(t, err)
	})

	t.Run("customer must exist", func(t *testing.T) {
		f := newBookingFixture(t)

		f.customerRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := f.svc.Create(context.Background(), baseReq)
		assert.Error(t, err)
	})

	t.Run("trip_end before trip_start", func(t *testing.T) {
		f := newBookingFixture(t)

		req := baseReq
		req.TripStart = "2026-10-15"
		req.TripEnd = "2026-10-05"

		err := f.svc.Create(context.Background(), req)
		assert.Error(t, err)
	})

	t.Run("unparseable trip dates", func(t *testing.T) {
		f := newBookingFixture(t)

		req := baseReq
		req.TripStart = "05/10/2026"

		err := f.svc.Create(context.Background(), req)
		assert.Error(t, err)
	})
}

func TestBookingService_Summary(t *testing.T) {
	paidAt := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("totals and outstanding balance", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{
				ID:       "bk-1",
				TripCost: 3000,
			}, nil)

		f.paymentRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Payment{
				{ID: "pay-1", BookingID: "bk-1", Amount: 1000, PaidAt: paidAt},
				{ID: "pay-2", BookingID: "bk-1", Amount: 500, PaidAt: paidAt},
			}, nil)

		f.expenseRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Expense{
				{ID: "exp-1", BookingID: "bk-1", Title: "Hotel block", Amount: 800, TotalCost: 700, SpentAt: paidAt},
			}, nil)

		res, err := f.svc.Summary(context.Background(), "bk-1")
		assert.NoError(t, err)
		assert.Equal(t, "bk-1", res.BookingID)
		assert.Equal(t, int64(3000), res.TripCost)
		assert.Equal(t, int64(1500), res.TotalPaid)
		assert.Equal(t, int64(1500), res.Outstanding)
		assert.Equal(t, int64(800), res.TotalExpenses)
		assert.Equal(t, int64(700), res.TotalExpenseCost)
		assert.Len(t, res.Payments, 2)
		assert.Len(t, res.Expenses, 1)
	})

	t.Run("empty ledger leaves the full cost outstanding", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "bk-1", TripCost: 3000}, nil)

		f.paymentRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Payment{}, nil)

		f.expenseRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Expense{}, nil)

		res, err := f.svc.Summary(context.Background(), "bk-1")
		assert.NoError(t, err)
		assert.Zero(t, res.TotalPaid)
		assert.Equal(t, int64(3000), res.Outstanding)
	})

	t.Run("booking not found", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := f.svc.Summary(context.Background(), "missing")
		assert.Error(t, err)
	})
}

func TestBookingService_DeleteCustomer(t *testing.T) {
	t.Run("deletes a customer with no bookings", func(t *testing.T) {
		f := newBookingFixture(t)

		f.customerRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		f.customerRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.DeleteCustomer(context.Background(), "cust-1")
		assert.NoError(t, err)
	})

	t.Run("refuses while bookings reference the customer", func(t *testing.T) {
		f := newBookingFixture(t)

		f.customerRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := f.svc.DeleteCustomer(context.Background(), "cust-1")
		assert.Error(t, err)
	})

	t.Run("customer not found", func(t *testing.T) {
		f := newBookingFixture(t)

		f.customerRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := f.svc.DeleteCustomer(context.Background(), "missing")
		assert.Error(t, err)
	})
}
