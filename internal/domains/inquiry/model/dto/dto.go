package dto

import (
	"fmt"

	"github.com/google/uuid"

	"himalayandays/internal/domains/inquiry/model"
	"himalayandays/shared"
	"himalayandays/shared/constant"
	gDto "himalayandays/shared/dto"
	gModel "himalayandays/shared/model"
	"himalayandays/shared/timezone"
)

type CreateInquiryRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"omitempty,email,max=100"`
	Phone   string `json:"phone"   validate:"required,max=20"`
	Type    string `json:"type"    validate:"omitempty,oneof=GENERAL PACKAGE HOTEL JOB OTHER"`
	Subject string `json:"subject" validate:"omitempty,max=150"`
	Message string `json:"message" validate:"required,max=4000"`
}

func (c *CreateInquiryRequest) ToModel(user string) model.Inquiry {
	inquiryType := c.Type
	if inquiryType == "" {
		inquiryType = model.TypeGeneral
	}

	return model.Inquiry{
		ID:      uuid.NewString(),
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Type:    inquiryType,
		Subject: c.Subject,
		Message: c.Message,
		Status:  model.StatusPending,
		IsRead:  false,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// RelayText renders the inquiry as the HTML message posted to the operations
// channel.
func (c *CreateInquiryRequest) RelayText() string {
	inquiryType := c.Type
	if inquiryType == "" {
		inquiryType = model.TypeGeneral
	}

	return fmt.Sprintf(
		"<b>New inquiry</b> (%s)\n<b>Name:</b> %s\n<b>Phone:</b> %s\n<b>Message:</b> %s",
		inquiryType, c.Name, c.Phone, c.Message,
	)
}

type UpdateInquiryRequest struct {
	Name    string `db:"name"    json:"name"    validate:"omitempty,max=100"`
	Email   string `db:"email"   json:"email"   validate:"omitempty,email,max=100"`
	Phone   string `db:"phone"   json:"phone"   validate:"omitempty,max=20"`
	Type    string `db:"type"    json:"type"    validate:"omitempty,oneof=GENERAL PACKAGE HOTEL JOB OTHER"`
	Subject string `db:"subject" json:"subject" validate:"omitempty,max=150"`
	Message string `db:"message" json:"message" validate:"omitempty,max=4000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONTACTED PROPOSAL_SENT NEGOTIATION WON LOST SPAM"`
}

type InquiryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone"`
	Type      string `json:"type"`
	Subject   string `json:"subject,omitempty"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	IsRead    bool   `json:"is_read"`
	DeletedAt string `json:"deleted_at,omitempty"`
	gDto.Metadata
}

func (r *InquiryResponse) FromModel(mod model.Inquiry) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.Type = mod.Type
	r.Subject = mod.Subject
	r.Message = mod.Message
	r.Status = mod.Status
	r.IsRead = mod.IsRead

	if mod.DeletedAt != nil {
		r.DeletedAt = timezone.Format(*mod.DeletedAt, constant.DateFormat)
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetInquiriesResponse struct {
	Inquiries []InquiryResponse `json:"inquiries"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetInquiriesResponse) FromModels(models []model.Inquiry, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Inquiries = make([]InquiryResponse, len(models))
	for i, mod := range models {
		r.Inquiries[i].FromModel(mod)
	}
}

// CheckForNewResponse is the polling contract for the admin notification
// toast: the client advances its cursor to NewTimestamp so the same rows are
// never counted twice.
type CheckForNewResponse struct {
	HasNew       bool  `json:"has_new"`
	Count        int   `json:"count"`
	NewTimestamp int64 `json:"new_timestamp"`
}
