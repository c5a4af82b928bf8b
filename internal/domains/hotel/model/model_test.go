package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"himalayandays/internal/domains/hotel/model"
)

func date(s string) time.Time {
	parsed, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}

	return parsed
}

func datePtr(s string) *time.Time {
	parsed := date(s)

	return &parsed
}

func TestRoomRate_OverlapsStay(t *testing.T) {
	rate := model.RoomRate{
		ValidFrom: date("2026-04-01"),
		ValidTo:   date("2026-04-30"),
	}

	tests := []struct {
		name     string
		stayFrom string
		stayTo   string
		want     bool
	}{
		{
			name:     "stay fully inside window",
			stayFrom: "2026-04-10",
			stayTo:   "2026-04-15",
			want:     true,
		},
		{
			name:     "stay fully covers window",
			stayFrom: "2026-03-01",
			stayTo:   "2026-05-31",
			want:     true,
		},
		{
			name:     "stay ends on window start",
			stayFrom: "2026-03-20",
			stayTo:   "2026-04-01",
			want:     true,
		},
		{
			name:     "stay starts on window end",
			stayFrom: "2026-04-30",
			stayTo:   "2026-05-05",
			want:     true,
		},
		{
			name:     "stay ends the day before window starts",
			stayFrom: "2026-03-20",
			stayTo:   "2026-03-31",
			want:     false,
		},
		{
			name:     "stay starts the day after window ends",
			stayFrom: "2026-05-01",
			stayTo:   "2026-05-10",
			want:     false,
		},
		{
			name:     "single-day stay inside window",
			stayFrom: "2026-04-15",
			stayTo:   "2026-04-15",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rate.OverlapsStay(date(tt.stayFrom), date(tt.stayTo))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoomRate_BookableAt(t *testing.T) {
	tests := []struct {
		name        string
		rateCutoff  *time.Time
		hotelCutoff *time.Time
		asOf        time.Time
		want        bool
	}{
		{
			name:        "no cutoffs",
			rateCutoff:  nil,
			hotelCutoff: nil,
			asOf:        date("2026-12-31"),
			want:        true,
		},
		{
			name:        "before rate cutoff",
			rateCutoff:  datePtr("2026-06-30"),
			hotelCutoff: nil,
			asOf:        date("2026-06-29"),
			want:        true,
		},
		{
			name:        "on rate cutoff day",
			rateCutoff:  datePtr("2026-06-30"),
			hotelCutoff: nil,
			asOf:        date("2026-06-30"),
			want:        true,
		},
		{
			name:        "after rate cutoff",
			rateCutoff:  datePtr("2026-06-30"),
			hotelCutoff: nil,
			asOf:        date("2026-07-01"),
			want:        false,
		},
		{
			name:        "after hotel cutoff",
			rateCutoff:  nil,
			hotelCutoff: datePtr("2026-05-31"),
			asOf:        date("2026-06-01"),
			want:        false,
		},
		{
			name:        "hotel cutoff earlier than rate cutoff",
			rateCutoff:  datePtr("2026-08-31"),
			hotelCutoff: datePtr("2026-05-31"),
			asOf:        date("2026-07-01"),
			want:        false,
		},
		{
			name:        "before both cutoffs",
			rateCutoff:  datePtr("2026-08-31"),
			hotelCutoff: datePtr("2026-05-31"),
			asOf:        date("2026-05-01"),
			want:        true,
		},
		{
			name:        "afternoon of the rate cutoff day",
			rateCutoff:  datePtr("2026-06-30"),
			hotelCutoff: nil,
			asOf:        time.Date(2026, 6, 30, 14, 0, 0, 0, time.UTC),
			want:        true,
		},
		{
			name:        "just past midnight after the rate cutoff",
			rateCutoff:  datePtr("2026-06-30"),
			hotelCutoff: nil,
			asOf:        time.Date(2026, 7, 1, 0, 30, 0, 0, time.UTC),
			want:        false,
		},
		{
			name:        "afternoon of the hotel cutoff day",
			rateCutoff:  nil,
			hotelCutoff: datePtr("2026-05-31"),
			asOf:        time.Date(2026, 5, 31, 23, 59, 0, 0, time.UTC),
			want:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := model.RoomRate{
				ValidFrom:         date("2026-01-01"),
				ValidTo:           date("2026-12-31"),
				BookingValidUntil: tt.rateCutoff,
			}

			got := rate.BookableAt(tt.asOf, tt.hotelCutoff)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHotel_Trashed(t *testing.T) {
	live := model.Hotel{ID: "hotel-1"}
	assert.False(t, live.Trashed())

	trashed := model.Hotel{ID: "hotel-2", DeletedAt: datePtr("2026-03-01")}
	assert.True(t, trashed.Trashed())
}
