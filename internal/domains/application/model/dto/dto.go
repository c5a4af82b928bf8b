package dto

import (
	"mime/multipart"

	"himalayandays/internal/domains/application/model"
	"himalayandays/shared"
	gDto "himalayandays/shared/dto"
)

type CreateApplicationRequest struct {
	Name        string                `json:"name"         validate:"required,max=100"`
	Email       string                `json:"email"        validate:"required,email,max=100"`
	Phone       string                `json:"phone"        validate:"omitempty,max=20"`
	Position    string                `json:"position"     validate:"required,max=100"`
	CoverLetter string                `json:"cover_letter" validate:"omitempty,max=5000"`
	Resume      *multipart.FileHeader `json:"resume"       swaggerignore:"true" validate:"required,mimetypes=application/pdf application/msword application/vnd.openxmlformats-officedocument.wordprocessingml.document,maxfilesize=5"`
	ResumeFile  multipart.File        `json:"-"`
}

type ApplicationResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Position    string `json:"position"`
	CoverLetter string `json:"cover_letter,omitempty"`
	ResumeName  string `json:"resume_name"`
	ResumeType  string `json:"resume_type"`
	gDto.Metadata
}

func (r *ApplicationResponse) FromModel(mod model.Application) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.Position = mod.Position
	r.CoverLetter = mod.CoverLetter
	r.ResumeName = mod.ResumeName
	r.ResumeType = mod.ResumeType
	r.Metadata.FromModel(mod.Metadata)
}

type GetApplicationsResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetApplicationsResponse) FromModels(models []model.Application, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Applications = make([]ApplicationResponse, len(models))
	for i, mod := range models {
		r.Applications[i].FromModel(mod)
	}
}

// ResumeResponse carries the stored resume blob back to the admin.
type ResumeResponse struct {
	FileName    string
	ContentType string
	Data        []byte
}
