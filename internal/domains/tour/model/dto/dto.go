package dto

import (
	"encoding/xml"

	"github.com/google/uuid"

	"himalayandays/internal/domains/tour/model"
	"himalayandays/shared"
	gDto "himalayandays/shared/dto"
	gModel "himalayandays/shared/model"
	"himalayandays/shared/timezone"
)

type CreatePackageRequest struct {
	Title        string `json:"title"         validate:"required,max=150"`
	Slug         string `json:"slug"          validate:"required,max=150,lowercase"`
	Description  string `json:"description"   validate:"omitempty,max=10000"`
	Destination  string `json:"destination"   validate:"required,max=100"`
	DurationDays int    `json:"duration_days" validate:"required,gte=1,lte=60"`
	Price        int64  `json:"price"         validate:"gte=0"`
	IsPublished  bool   `json:"is_published"`
}

func (c *CreatePackageRequest) ToModel(user string) model.Package {
	return model.Package{
		ID:           uuid.NewString(),
		Title:        c.Title,
		Slug:         c.Slug,
		Description:  c.Description,
		Destination:  c.Destination,
		DurationDays: c.DurationDays,
		Price:        c.Price,
		IsPublished:  c.IsPublished,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePackageRequest struct {
	Title        string `db:"title"         json:"title"         validate:"omitempty,max=150"`
	Description  string `db:"description"   json:"description"   validate:"omitempty,max=10000"`
	Destination  string `db:"destination"   json:"destination"   validate:"omitempty,max=100"`
	DurationDays int    `db:"duration_days" json:"duration_days" validate:"omitempty,gte=1,lte=60"`
	Price        int64  `db:"price"         json:"price"         validate:"omitempty,gte=0"`
}

type PublishPackageRequest struct {
	IsPublished bool `json:"is_published"`
}

type PackageResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	Destination  string `json:"destination"`
	DurationDays int    `json:"duration_days"`
	Price        int64  `json:"price"`
	IsPublished  bool   `json:"is_published"`
	gDto.Metadata
}

func (r *PackageResponse) FromModel(mod model.Package) {
	r.ID = mod.ID
	r.Title = mod.Title
	r.Slug = mod.Slug
	r.Description = mod.Description
	r.Destination = mod.Destination
	r.DurationDays = mod.DurationDays
	r.Price = mod.Price
	r.IsPublished = mod.IsPublished
	r.Metadata.FromModel(mod.Metadata)
}

type GetPackagesResponse struct {
	Packages  []PackageResponse `json:"packages"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPackagesResponse) FromModels(models []model.Package, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Packages = make([]PackageResponse, len(models))
	for i, mod := range models {
		r.Packages[i].FromModel(mod)
	}
}

// Sitemap types follow the sitemaps.org urlset schema.
type SitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}
