package dto

import (
	"time"

	"github.com/google/uuid"

	"himalayandays/internal/domains/hotel/model"
	"himalayandays/shared"
	"himalayandays/shared/constant"
	gDto "himalayandays/shared/dto"
	gModel "himalayandays/shared/model"
	"himalayandays/shared/timezone"
)

type CreateHotelRequest struct {
	Name           string `json:"name"             validate:"required,max=150"`
	City           string `json:"city"             validate:"required,max=100"`
	Stars          int    `json:"stars"            validate:"required,gte=1,lte=5"`
	RateValidUntil string `json:"rate_valid_until" validate:"omitempty"`
}

func (c *CreateHotelRequest) ToModel(user string) (model.Hotel, error) {
	var cutoff *time.Time

	if c.RateValidUntil != "" {
		parsed, err := time.Parse(constant.DateOnlyFormat, c.RateValidUntil)
		if err != nil {
			return model.Hotel{}, err
		}

		cutoff = &parsed
	}

	return model.Hotel{
		ID:             uuid.NewString(),
		Name:           c.Name,
		City:           c.City,
		Stars:          c.Stars,
		RateValidUntil: cutoff,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateHotelRequest struct {
	Name           string `db:"name"                  json:"name"             validate:"omitempty,max=150"`
	City           string `db:"city"                  json:"city"             validate:"omitempty,max=100"`
	Stars          int    `db:"stars"                 json:"stars"            validate:"omitempty,gte=1,lte=5"`
	RateValidUntil string `db:"rate_valid_until"      json:"rate_valid_until" validate:"omitempty"`
}

type HotelResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	City           string `json:"city"`
	Stars          int    `json:"stars"`
	RateValidUntil string `json:"rate_valid_until,omitempty"`
	DeletedAt      string `json:"deleted_at,omitempty"`
	gDto.Metadata
}

func (r *HotelResponse) FromModel(mod model.Hotel) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.City = mod.City
	r.Stars = mod.Stars

	if mod.RateValidUntil != nil {
		r.RateValidUntil = mod.RateValidUntil.Format(constant.DateOnlyFormat)
	}

	if mod.DeletedAt != nil {
		r.DeletedAt = timezone.Format(*mod.DeletedAt, constant.DateFormat)
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}

type CreateRoomTypeRequest struct {
	HotelID      string `json:"hotel_id"      validate:"required"`
	Name         string `json:"name"          validate:"required,max=100"`
	MaxOccupancy int    `json:"max_occupancy" validate:"required,gte=1,lte=10"`
}

func (c *CreateRoomTypeRequest) ToModel(user string) model.RoomType {
	return model.RoomType{
		ID:           uuid.NewString(),
		HotelID:      c.HotelID,
		Name:         c.Name,
		MaxOccupancy: c.MaxOccupancy,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomTypeRequest struct {
	Name         string `db:"name"          json:"name"          validate:"omitempty,max=100"`
	MaxOccupancy int    `db:"max_occupancy" json:"max_occupancy" validate:"omitempty,gte=1,lte=10"`
}

type RoomTypeResponse struct {
	ID           string `json:"id"`
	HotelID      string `json:"hotel_id"`
	Name         string `json:"name"`
	MaxOccupancy int    `json:"max_occupancy"`
	gDto.Metadata
}

func (r *RoomTypeResponse) FromModel(mod model.RoomType) {
	r.ID = mod.ID
	r.HotelID = mod.HotelID
	r.Name = mod.Name
	r.MaxOccupancy = mod.MaxOccupancy
	r.Metadata.FromModel(mod.Metadata)
}

type GetRoomTypesResponse struct {
	RoomTypes []RoomTypeResponse `json:"room_types"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetRoomTypesResponse) FromModels(models []model.RoomType, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.RoomTypes = make([]RoomTypeResponse, len(models))
	for i, mod := range models {
		r.RoomTypes[i].FromModel(mod)
	}
}

type CreateRoomRateRequest struct {
	RoomTypeID        string `json:"room_type_id"        validate:"required"`
	ValidFrom         string `json:"valid_from"          validate:"required"`
	ValidTo           string `json:"valid_to"            validate:"required"`
	BookingValidUntil string `json:"booking_valid_until" validate:"omitempty"`
	PriceEP           int64  `json:"price_ep"            validate:"required,gte=0"`
	PriceCP           int64  `json:"price_cp"            validate:"omitempty,gte=0"`
	PriceMAP          int64  `json:"price_map"           validate:"omitempty,gte=0"`
	PriceAP           int64  `json:"price_ap"            validate:"omitempty,gte=0"`
	ExtraBedEP        int64  `json:"extra_bed_ep"        validate:"omitempty,gte=0"`
	ExtraBedCP        int64  `json:"extra_bed_cp"        validate:"omitempty,gte=0"`
	ExtraBedMAP       int64  `json:"extra_bed_map"       validate:"omitempty,gte=0"`
	ExtraBedAP        int64  `json:"extra_bed_ap"        validate:"omitempty,gte=0"`
}

func (c *CreateRoomRateRequest) ToModel(user string) (model.RoomRate, error) {
	validFrom, err := time.Parse(constant.DateOnlyFormat, c.ValidFrom)
	if err != nil {
		return model.RoomRate{}, err
	}

	validTo, err := time.Parse(constant.DateOnlyFormat, c.ValidTo)
	if err != nil {
		return model.RoomRate{}, err
	}

	var bookingValidUntil *time.Time

	if c.BookingValidUntil != "" {
		parsed, err := time.Parse(constant.DateOnlyFormat, c.BookingValidUntil)
		if err != nil {
			return model.RoomRate{}, err
		}

		bookingValidUntil = &parsed
	}

	return model.RoomRate{
		ID:                uuid.NewString(),
		RoomTypeID:        c.RoomTypeID,
		ValidFrom:         validFrom,
		ValidTo:           validTo,
		BookingValidUntil: bookingValidUntil,
		PriceEP:           c.PriceEP,
		PriceCP:           c.PriceCP,
		PriceMAP:          c.PriceMAP,
		PriceAP:           c.PriceAP,
		ExtraBedEP:        c.ExtraBedEP,
		ExtraBedCP:        c.ExtraBedCP,
		ExtraBedMAP:       c.ExtraBedMAP,
		ExtraBedAP:        c.ExtraBedAP,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

// UpdateRoomRateRequest covers price and booking-cutoff changes. The validity
// window itself is immutable once created; replacing a window means deleting
// the rate and creating a new one, which keeps the no-overlap check simple.
type UpdateRoomRateRequest struct {
	BookingValidUntil string `db:"booking_valid_until" json:"booking_valid_until" validate:"omitempty"`
	PriceEP           int64  `db:"price_ep"            json:"price_ep"            validate:"omitempty,gte=0"`
	PriceCP           int64  `db:"price_cp"            json:"price_cp"            validate:"omitempty,gte=0"`
	PriceMAP          int64  `db:"price_map"           json:"price_map"           validate:"omitempty,gte=0"`
	PriceAP           int64  `db:"price_ap"            json:"price_ap"            validate:"omitempty,gte=0"`
	ExtraBedEP        int64  `db:"extra_bed_ep"        json:"extra_bed_ep"        validate:"omitempty,gte=0"`
	ExtraBedCP        int64  `db:"extra_bed_cp"        json:"extra_bed_cp"        validate:"omitempty,gte=0"`
	ExtraBedMAP       int64  `db:"extra_bed_map"       json:"extra_bed_map"       validate:"omitempty,gte=0"`
	ExtraBedAP        int64  `db:"extra_bed_ap"        json:"extra_bed_ap"        validate:"omitempty,gte=0"`
}

type RoomRateResponse struct {
	ID                string `json:"id"`
	RoomTypeID        string `json:"room_type_id"`
	ValidFrom         string `json:"valid_from"`
	ValidTo           string `json:"valid_to"`
	BookingValidUntil string `json:"booking_valid_until,omitempty"`
	PriceEP           int64  `json:"price_ep"`
	PriceCP           int64  `json:"price_cp"`
	PriceMAP          int64  `json:"price_map"`
	PriceAP           int64  `json:"price_ap"`
	ExtraBedEP        int64  `json:"extra_bed_ep"`
	ExtraBedCP        int64  `json:"extra_bed_cp"`
	ExtraBedMAP       int64  `json:"extra_bed_map"`
	ExtraBedAP        int64  `json:"extra_bed_ap"`
	gDto.Metadata
}

func (r *RoomRateResponse) FromModel(mod model.RoomRate) {
	r.ID = mod.ID
	r.RoomTypeID = mod.RoomTypeID
	r.ValidFrom = mod.ValidFrom.Format(constant.DateOnlyFormat)
	r.ValidTo = mod.ValidTo.Format(constant.DateOnlyFormat)

	if mod.BookingValidUntil != nil {
		r.BookingValidUntil = mod.BookingValidUntil.Format(constant.DateOnlyFormat)
	}

	r.PriceEP = mod.PriceEP
	r.PriceCP = mod.PriceCP
	r.PriceMAP = mod.PriceMAP
	r.PriceAP = mod.PriceAP
	r.ExtraBedEP = mod.ExtraBedEP
	r.ExtraBedCP = mod.ExtraBedCP
	r.ExtraBedMAP = mod.ExtraBedMAP
	r.ExtraBedAP = mod.ExtraBedAP
	r.Metadata.FromModel(mod.Metadata)
}

type GetRoomRatesResponse struct {
	RoomRates []RoomRateResponse `json:"room_rates"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetRoomRatesResponse) FromModels(models []model.RoomRate, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.RoomRates = make([]RoomRateResponse, len(models))
	for i, mod := range models {
		r.RoomRates[i].FromModel(mod)
	}
}

// ResolvedRate is a rate matched against a stay range, annotated with whether
// a booking may still be made at the as-of date.
type ResolvedRate struct {
	RoomRateResponse
	Bookable bool `json:"bookable"`
}

type ResolveRatesResponse struct {
	Rates []ResolvedRate `json:"rates"`
}
