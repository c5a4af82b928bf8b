package model

import (
	"time"

	"himalayandays/shared/model"
)

const (
	TableName  = "inquiries"
	EntityName = "inquiry"

	FieldID        = "id"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldType      = "type"
	FieldSubject   = "subject"
	FieldMessage   = "message"
	FieldStatus    = "status"
	FieldIsRead    = "is_read"
	FieldDeletedAt = "deleted_at"
	FieldCreatedAt = "created_at"
)

const (
	TypeGeneral = "GENERAL"
	TypePackage = "PACKAGE"
	TypeHotel   = "HOTEL"
	TypeJob     = "JOB"
	TypeOther   = "OTHER"
)

const (
	StatusPending      = "PENDING"
	StatusContacted    = "CONTACTED"
	StatusProposalSent = "PROPOSAL_SENT"
	StatusNegotiation  = "NEGOTIATION"
	StatusWon          = "WON"
	StatusLost         = "LOST"
	StatusSpam         = "SPAM"
)

// transitions lists the allowed next statuses per current status. WON and
// LOST are terminal; SPAM is reversible back to PENDING so a mislabeled
// inquiry can rejoin the pipeline.
var transitions = map[string]map[string]bool{
	StatusPending:      {StatusContacted: true, StatusSpam: true, StatusLost: true},
	StatusContacted:    {StatusProposalSent: true, StatusWon: true, StatusLost: true, StatusSpam: true},
	StatusProposalSent: {StatusNegotiation: true, StatusWon: true, StatusLost: true, StatusSpam: true},
	StatusNegotiation:  {StatusWon: true, StatusLost: true, StatusSpam: true},
	StatusWon:          {},
	StatusLost:         {},
	StatusSpam:         {StatusPending: true},
}

// CanTransition reports whether moving from one status to another is allowed.
// A same-status move is always allowed and treated as a no-op by callers.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}

	next, ok := transitions[from]
	if !ok {
		return false
	}

	return next[to]
}

// ValidStatus reports whether the given value is a known pipeline status.
func ValidStatus(status string) bool {
	_, ok := transitions[status]

	return ok
}

type Inquiry struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	Email     string     `db:"email"`
	Phone     string     `db:"phone"`
	Type      string     `db:"type"`
	Subject   string     `db:"subject"`
	Message   string     `db:"message"`
	Status    string     `db:"status"`
	IsRead    bool       `db:"is_read"`
	DeletedAt *time.Time `db:"deleted_at"`
	model.Metadata
}

// Trashed reports whether the inquiry is soft-deleted.
func (i *Inquiry) Trashed() bool {
	return i.DeletedAt != nil
}
