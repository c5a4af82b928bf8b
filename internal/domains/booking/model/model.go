package model

import (
	"time"

	"himalayandays/shared/model"
)

const (
	CustomerTableName  = "customers"
	CustomerEntityName = "customer"

	BookingTableName  = "bookings"
	BookingEntityName = "booking"

	PaymentTableName  = "payments"
	PaymentEntityName = "payment"

	ExpenseTableName  = "booking_expenses"
	ExpenseEntityName = "booking expense"

	FieldID         = "id"
	FieldName       = "name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldCustomerID = "customer_id"
	FieldInquiryID  = "inquiry_id"
	FieldBookingID  = "booking_id"
	FieldTitle      = "title"
	FieldTripStart  = "trip_start"
	FieldTripEnd    = "trip_end"
	FieldTripCost   = "trip_cost"
	FieldAmount     = "amount"
	FieldPaidAt     = "paid_at"
	FieldMode       = "mode"
	FieldCategory   = "category"
	FieldSpentAt    = "spent_at"
)

type Customer struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Email   string `db:"email"`
	Phone   string `db:"phone"`
	Address string `db:"address"`
	model.Metadata
}

// Booking ties a customer's trip to its payment and expense ledger. TripCost
// is the agreed price; the outstanding balance is always derived from the
// payment rows, never stored.
type Booking struct {
	ID         string    `db:"id"`
	CustomerID string    `db:"customer_id"`
	InquiryID  *string   `db:"inquiry_id"`
	Title      string    `db:"title"`
	TripStart  time.Time `db:"trip_start"`
	TripEnd    time.Time `db:"trip_end"`
	TripCost   int64     `db:"trip_cost"`
	Notes      string    `db:"notes"`
	model.Metadata
}

type Payment struct {
	ID        string    `db:"id"`
	BookingID string    `db:"booking_id"`
	Amount    int64     `db:"amount"`
	PaidAt    time.Time `db:"paid_at"`
	Mode      string    `db:"mode"`
	Notes     string    `db:"notes"`
	model.Metadata
}

// Expense records money the business spent on a booking. Amount is what was
// charged against the booking; TotalCost is the actual cost to the business,
// kept separately for margin reporting.
type Expense struct {
	ID          string    `db:"id"`
	BookingID   string    `db:"booking_id"`
	Title       string    `db:"title"`
	Category    string    `db:"category"`
	Amount      int64     `db:"amount"`
	TotalCost   int64     `db:"total_cost"`
	PaymentMode string    `db:"payment_mode"`
	Notes       string    `db:"notes"`
	SpentAt     time.Time `db:"spent_at"`
	model.Metadata
}
