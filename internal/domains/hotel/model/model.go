package model

import (
	"time"

	"himalayandays/shared/model"
)

const (
	HotelTableName  = "hotels"
	HotelEntityName = "hotel"

	FieldID             = "id"
	FieldName           = "name"
	FieldCity           = "city"
	FieldStars          = "stars"
	FieldRateValidUntil = "rate_valid_until"
	FieldDeletedAt      = "deleted_at"
)

const (
	RoomTypeTableName  = "room_types"
	RoomTypeEntityName = "room_type"

	FieldHotelID      = "hotel_id"
	FieldMaxOccupancy = "max_occupancy"
)

const (
	RoomRateTableName  = "room_rates"
	RoomRateEntityName = "room_rate"

	FieldRoomTypeID        = "room_type_id"
	FieldValidFrom         = "valid_from"
	FieldValidTo           = "valid_to"
	FieldBookingValidUntil = "booking_valid_until"
)

type Hotel struct {
	ID             string     `db:"id"`
	Name           string     `db:"name"`
	City           string     `db:"city"`
	Stars          int        `db:"stars"`
	RateValidUntil *time.Time `db:"rate_valid_until"`
	DeletedAt      *time.Time `db:"deleted_at"`
	model.Metadata
}

// Trashed reports whether the hotel is soft-deleted.
func (h *Hotel) Trashed() bool {
	return h.DeletedAt != nil
}

type RoomType struct {
	ID           string `db:"id"`
	HotelID      string `db:"hotel_id"`
	Name         string `db:"name"`
	MaxOccupancy int    `db:"max_occupancy"`
	model.Metadata
}

// RoomRate is a priced offer for a room type over a stay window. The window
// [ValidFrom, ValidTo] bounds the stay dates the price applies to, while
// BookingValidUntil separately bounds the date a booking may still be made.
type RoomRate struct {
	ID                string     `db:"id"`
	RoomTypeID        string     `db:"room_type_id"`
	ValidFrom         time.Time  `db:"valid_from"`
	ValidTo           time.Time  `db:"valid_to"`
	BookingValidUntil *time.Time `db:"booking_valid_until"`
	PriceEP           int64      `db:"price_ep"`
	PriceCP           int64      `db:"price_cp"`
	PriceMAP          int64      `db:"price_map"`
	PriceAP           int64      `db:"price_ap"`
	ExtraBedEP        int64      `db:"extra_bed_ep"`
	ExtraBedCP        int64      `db:"extra_bed_cp"`
	ExtraBedMAP       int64      `db:"extra_bed_map"`
	ExtraBedAP        int64      `db:"extra_bed_ap"`
	model.Metadata
}

// OverlapsStay reports whether the rate window intersects the stay range:
// ValidFrom <= stayTo and ValidTo >= stayFrom, inclusive on both ends.
func (r *RoomRate) OverlapsStay(stayFrom, stayTo time.Time) bool {
	return !r.ValidFrom.After(stayTo) && !r.ValidTo.Before(stayFrom)
}

// BookableAt evaluates booking eligibility at the given date. A nil
// BookingValidUntil means the rate itself never expires for booking; a nil
// hotel cutoff means no hotel-level gate applies. Cutoffs are calendar
// dates: eligibility on the cutoff day itself still holds, so the comparison
// drops any time-of-day component of asOf.
func (r *RoomRate) BookableAt(asOf time.Time, hotelCutoff *time.Time) bool {
	day := dateOnly(asOf)

	if r.BookingValidUntil != nil && day.After(dateOnly(*r.BookingValidUntil)) {
		return false
	}

	if hotelCutoff != nil && day.After(dateOnly(*hotelCutoff)) {
		return false
	}

	return true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
