package model

import "himalayandays/shared/model"

const (
	TableName  = "tour_packages"
	EntityName = "tour package"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldDestination = "destination"
	FieldIsPublished = "is_published"
)

type Package struct {
	ID           string `db:"id"`
	Title        string `db:"title"`
	Slug         string `db:"slug"`
	Description  string `db:"description"`
	Destination  string `db:"destination"`
	DurationDays int    `db:"duration_days"`
	Price        int64  `db:"price"`
	IsPublished  bool   `db:"is_published"`
	model.Metadata
}
