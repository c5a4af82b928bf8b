package dto

import (
	"time"

	"github.com/google/uuid"

	"himalayandays/internal/domains/booking/model"
	"himalayandays/shared"
	"himalayandays/shared/constant"
	gDto "himalayandays/shared/dto"
	gModel "himalayandays/shared/model"
	"himalayandays/shared/timezone"
)

type CreateCustomerRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"omitempty,email,max=100"`
	Phone   string `json:"phone"   validate:"omitempty,max=20"`
	Address string `json:"address" validate:"omitempty,max=255"`
}

func (c *CreateCustomerRequest) ToModel(user string) model.Customer {
	return model.Customer{
		ID:      uuid.NewString(),
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCustomerRequest struct {
	Name    string `db:"name"    json:"name"    validate:"omitempty,max=100"`
	Email   string `db:"email"   json:"email"   validate:"omitempty,email,max=100"`
	Phone   string `db:"phone"   json:"phone"   validate:"omitempty,max=20"`
	Address string `db:"address" json:"address" validate:"omitempty,max=255"`
}

type CustomerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(mod model.Customer) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.Address = mod.Address
	r.Metadata.FromModel(mod.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}

type CreateBookingRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	InquiryID  string `json:"inquiry_id"  validate:"omitempty"`
	Title      string `json:"title"       validate:"required,max=150"`
	TripStart  string `json:"trip_start"  validate:"required"`
	TripEnd    string `json:"trip_end"    validate:"required"`
	TripCost   int64  `json:"trip_cost"   validate:"gte=0"`
	Notes      string `json:"notes"       validate:"omitempty,max=1000"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	tripStart, err := time.Parse(constant.DateOnlyFormat, c.TripStart)
	if err != nil {
		return model.Booking{}, err
	}

	tripEnd, err := time.Parse(constant.DateOnlyFormat, c.TripEnd)
	if err != nil {
		return model.Booking{}, err
	}

	var inquiryID *string
	if c.InquiryID != "" {
		inquiryID = &c.InquiryID
	}

	return model.Booking{
		ID:         uuid.NewString(),
		CustomerID: c.CustomerID,
		InquiryID:  inquiryID,
		Title:      c.Title,
		TripStart:  tripStart,
		TripEnd:    tripEnd,
		TripCost:   c.TripCost,
		Notes:      c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateBookingRequest struct {
	Title     string `db:"title"      json:"title"      validate:"omitempty,max=150"`
	TripStart string `db:"trip_start" json:"trip_start" validate:"omitempty"`
	TripEnd   string `db:"trip_end"   json:"trip_end"   validate:"omitempty"`
	TripCost  int64  `db:"trip_cost"  json:"trip_cost"  validate:"omitempty,gte=0"`
	Notes     string `db:"notes"      json:"notes"      validate:"omitempty,max=1000"`
}

type BookingResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	InquiryID  string `json:"inquiry_id,omitempty"`
	Title      string `json:"title"`
	TripStart  string `json:"trip_start"`
	TripEnd    string `json:"trip_end"`
	TripCost   int64  `json:"trip_cost"`
	Notes      string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.CustomerID = mod.CustomerID
	r.Title = mod.Title
	r.TripStart = mod.TripStart.Format(constant.DateOnlyFormat)
	r.TripEnd = mod.TripEnd.Format(constant.DateOnlyFormat)
	r.TripCost = mod.TripCost
	r.Notes = mod.Notes

	if mod.InquiryID != nil {
		r.InquiryID = *mod.InquiryID
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type CreatePaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	Amount    int64  `json:"amount"     validate:"required,gt=0"`
	PaidAt    string `json:"paid_at"    validate:"required"`
	Mode      string `json:"mode"       validate:"required,max=30"`
	Notes     string `json:"notes"      validate:"omitempty,max=500"`
}

func (c *CreatePaymentRequest) ToModel(user string) (model.Payment, error) {
	paidAt, err := time.Parse(constant.DateOnlyFormat, c.PaidAt)
	if err != nil {
		return model.Payment{}, err
	}

	return model.Payment{
		ID:        uuid.NewString(),
		BookingID: c.BookingID,
		Amount:    c.Amount,
		PaidAt:    paidAt,
		Mode:      c.Mode,
		Notes:     c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdatePaymentRequest struct {
	Amount int64  `db:"amount"  json:"amount"  validate:"omitempty,gt=0"`
	PaidAt string `db:"paid_at" json:"paid_at" validate:"omitempty"`
	Mode   string `db:"mode"    json:"mode"    validate:"omitempty,max=30"`
	Notes  string `db:"notes"   json:"notes"   validate:"omitempty,max=500"`
}

type PaymentResponse struct {
	ID        string `json:"id"`
	BookingID string `json:"booking_id"`
	Amount    int64  `json:"amount"`
	PaidAt    string `json:"paid_at"`
	Mode      string `json:"mode"`
	Notes     string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(mod model.Payment) {
	r.ID = mod.ID
	r.BookingID = mod.BookingID
	r.Amount = mod.Amount
	r.PaidAt = mod.PaidAt.Format(constant.DateOnlyFormat)
	r.Mode = mod.Mode
	r.Notes = mod.Notes
	r.Metadata.FromModel(mod.Metadata)
}

type CreateExpenseRequest struct {
	BookingID   string `json:"booking_id"   validate:"required"`
	Title       string `json:"title"        validate:"required,max=150"`
	Category    string `json:"category"     validate:"omitempty,max=50"`
	Amount      int64  `json:"amount"       validate:"required,gt=0"`
	TotalCost   int64  `json:"total_cost"   validate:"omitempty,gte=0"`
	PaymentMode string `json:"payment_mode" validate:"omitempty,max=30"`
	Notes       string `json:"notes"        validate:"omitempty,max=500"`
	SpentAt     string `json:"spent_at"     validate:"required"`
}

func (c *CreateExpenseRequest) ToModel(user string) (model.Expense, error) {
	spentAt, err := time.Parse(constant.DateOnlyFormat, c.SpentAt)
	if err != nil {
		return model.Expense{}, err
	}

	return model.Expense{
		ID:          uuid.NewString(),
		BookingID:   c.BookingID,
		Title:       c.Title,
		Category:    c.Category,
		Amount:      c.Amount,
		TotalCost:   c.TotalCost,
		PaymentMode: c.PaymentMode,
		Notes:       c.Notes,
		SpentAt:     spentAt,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateExpenseRequest struct {
	Title       string `db:"title"        json:"title"        validate:"omitempty,max=150"`
	Category    string `db:"category"     json:"category"     validate:"omitempty,max=50"`
	Amount      int64  `db:"amount"       json:"amount"       validate:"omitempty,gt=0"`
	TotalCost   int64  `db:"total_cost"   json:"total_cost"   validate:"omitempty,gte=0"`
	PaymentMode string `db:"payment_mode" json:"payment_mode" validate:"omitempty,max=30"`
	Notes       string `db:"notes"        json:"notes"        validate:"omitempty,max=500"`
	SpentAt     string `db:"spent_at"     json:"spent_at"     validate:"omitempty"`
}

type ExpenseResponse struct {
	ID          string `json:"id"`
	BookingID   string `json:"booking_id"`
	Title       string `json:"title"`
	Category    string `json:"category,omitempty"`
	Amount      int64  `json:"amount"`
	TotalCost   int64  `json:"total_cost"`
	PaymentMode string `json:"payment_mode,omitempty"`
	Notes       string `json:"notes,omitempty"`
	SpentAt     string `json:"spent_at"`
	gDto.Metadata
}

func (r *ExpenseResponse) FromModel(mod model.Expense) {
	r.ID = mod.ID
	r.BookingID = mod.BookingID
	r.Title = mod.Title
	r.Category = mod.Category
	r.Amount = mod.Amount
	r.TotalCost = mod.TotalCost
	r.PaymentMode = mod.PaymentMode
	r.Notes = mod.Notes
	r.SpentAt = mod.SpentAt.Format(constant.DateOnlyFormat)
	r.Metadata.FromModel(mod.Metadata)
}

// BookingSummaryResponse is the ledger view of a booking. Every figure is
// recomputed from the payment and expense rows on each read.
type BookingSummaryResponse struct {
	BookingID        string            `json:"booking_id"`
	TripCost         int64             `json:"trip_cost"`
	TotalPaid        int64             `json:"total_paid"`
	Outstanding      int64             `json:"outstanding"`
	TotalExpenses    int64             `json:"total_expenses"`
	TotalExpenseCost int64             `json:"total_expense_cost"`
	Payments         []PaymentResponse `json:"payments"`
	Expenses         []ExpenseResponse `json:"expenses"`
}
