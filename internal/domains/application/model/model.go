package model

import "himalayandays/shared/model"

const (
	TableName  = "job_applications"
	EntityName = "job application"

	ResumeDirectory = "resumes"

	FieldID       = "id"
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPosition = "position"
)

type Application struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Email       string `db:"email"`
	Phone       string `db:"phone"`
	Position    string `db:"position"`
	CoverLetter string `db:"cover_letter"`
	ResumeKey   string `db:"resume_key"`
	ResumeName  string `db:"resume_name"`
	ResumeType  string `db:"resume_type"`
	model.Metadata
}
