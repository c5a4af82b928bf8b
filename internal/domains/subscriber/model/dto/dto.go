package dto

import (
	"github.com/google/uuid"

	"himalayandays/internal/domains/subscriber/model"
	"himalayandays/shared"
	"himalayandays/shared/constant"
	gDto "himalayandays/shared/dto"
	gModel "himalayandays/shared/model"
	"himalayandays/shared/timezone"
)

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email,max=100"`
}

func (s *SubscribeRequest) ToModel() model.Subscriber {
	return model.Subscriber{
		ID:           uuid.NewString(),
		Email:        s.Email,
		IsActive:     true,
		SubscribedAt: timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email,max=100"`
}

// SubscribeResponse tells a returning subscriber apart from a new one.
type SubscribeResponse struct {
	Email       string `json:"email"`
	Reactivated bool   `json:"reactivated"`
}

type SubscriberResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	IsActive       bool   `json:"is_active"`
	SubscribedAt   string `json:"subscribed_at"`
	UnsubscribedAt string `json:"unsubscribed_at,omitempty"`
	gDto.Metadata
}

func (r *SubscriberResponse) FromModel(mod model.Subscriber) {
	r.ID = mod.ID
	r.Email = mod.Email
	r.IsActive = mod.IsActive
	r.SubscribedAt = timezone.Format(mod.SubscribedAt, constant.DateFormat)

	if mod.UnsubscribedAt != nil {
		r.UnsubscribedAt = timezone.Format(*mod.UnsubscribedAt, constant.DateFormat)
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetSubscribersResponse struct {
	Subscribers []SubscriberResponse `json:"subscribers"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetSubscribersResponse) FromModels(models []model.Subscriber, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Subscribers = make([]SubscriberResponse, len(models))
	for i, mod := range models {
		r.Subscribers[i].FromModel(mod)
	}
}
