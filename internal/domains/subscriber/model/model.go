package model

import (
	"time"

	"himalayandays/shared/model"
)

const (
	TableName  = "subscribers"
	EntityName = "subscriber"

	FieldID             = "id"
	FieldEmail          = "email"
	FieldIsActive       = "is_active"
	FieldSubscribedAt   = "subscribed_at"
	FieldUnsubscribedAt = "unsubscribed_at"
)

// SubscribeOutcome is the result of the subscribe check-and-write.
type SubscribeOutcome string

const (
	OutcomeCreated       SubscribeOutcome = "CREATED"
	OutcomeReactivated   SubscribeOutcome = "REACTIVATED"
	OutcomeAlreadyActive SubscribeOutcome = "ALREADY_ACTIVE"
)

type Subscriber struct {
	ID             string     `db:"id"`
	Email          string     `db:"email"`
	IsActive       bool       `db:"is_active"`
	SubscribedAt   time.Time  `db:"subscribed_at"`
	UnsubscribedAt *time.Time `db:"unsubscribed_at"`
	model.Metadata
}
