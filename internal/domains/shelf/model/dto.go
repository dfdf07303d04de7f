package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	catalog "mediashelf-backend/internal/domains/catalog/model"
)

// AddEntryRequest creates a shelf entry, finding or creating the catalog
// entity from the identifying fields. Articles are identified by URL, every
// other kind by title plus creator.
type AddEntryRequest struct {
	Kind    string  `json:"kind"`
	Title   string  `json:"title"`
	Creator string  `json:"creator"` // author / director / show creator / publisher
	Year    *int    `json:"year"`
	ISBN    *string `json:"isbn"`
	URL     string  `json:"url"`

	Status   string  `json:"status"`
	Rating   *int    `json:"rating"`
	Notes    *string `json:"notes"`
	Priority int     `json:"priority"`
}

func (r AddEntryRequest) Validate() error {
	isArticle := catalog.Kind(r.Kind) == catalog.KindArticle
	return validation.ValidateStruct(&r,
		validation.Field(&r.Kind,
			validation.Required,
			validation.By(validKind),
		),
		validation.Field(&r.Title,
			validation.Required.When(!isArticle).Error("title is required"),
			validation.Length(0, 500),
		),
		validation.Field(&r.Creator, validation.Length(0, 300)),
		validation.Field(&r.URL,
			validation.Required.When(isArticle).Error("url is required for articles"),
			validation.When(r.URL != "", is.URL),
		),
		validation.Field(&r.Status, validation.By(validOptionalStatus)),
		validation.Field(&r.Rating, validation.Min(1), validation.Max(10)),
		validation.Field(&r.Year, validation.Min(1800), validation.Max(2100)),
		validation.Field(&r.Priority, validation.Min(0), validation.Max(100)),
	)
}

// UpdateEntryRequest patches user-owned fields only; nil means unchanged.
type UpdateEntryRequest struct {
	Status   *string `json:"status"`
	Rating   *int    `json:"rating"`
	Notes    *string `json:"notes"`
	Priority *int    `json:"priority"`
}

func (r UpdateEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.By(validOptionalStatusPtr)),
		validation.Field(&r.Rating, validation.Min(1), validation.Max(10)),
		validation.Field(&r.Priority, validation.Min(0), validation.Max(100)),
	)
}

func validKind(value interface{}) error {
	s, _ := value.(string)
	if !catalog.Kind(s).IsValid() {
		return validation.NewError("validation_kind", "unknown entity kind")
	}
	return nil
}

func validOptionalStatus(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !Status(s).IsValid() {
		return validation.NewError("validation_status", "unknown status")
	}
	return nil
}

func validOptionalStatusPtr(value interface{}) error {
	s, _ := value.(*string)
	if s == nil {
		return nil
	}
	return validOptionalStatus(*s)
}
