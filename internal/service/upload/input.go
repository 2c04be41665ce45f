package upload

import (
	"io"
	"strings"
	"time"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

const dateLayout = "2006-01-02"

// File is an uploaded file as received from the client.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// LanguageInput holds the fields of the language record upload form.
type LanguageInput struct {
	OnomatopoeiaText   string
	Meaning            string
	UsageExample       string
	PhoneticNotation   string
	LanguageFrequency  string
	FileType           string
	SpeakerID          *int64
	OnomatopoeiaTypeID *int64
	RecordedDate       string
	Notes              string
	File               *File
	Thumbnail          *File
}

// Validate checks all fields and collects all errors.
func (i LanguageInput) Validate(maxBytes int64) error {
	var errs []domain.FieldError

	errs = required(errs, "onomatopoeia_text", i.OnomatopoeiaText)
	errs = required(errs, "meaning", i.Meaning)
	errs = required(errs, "usage_example", i.UsageExample)

	if !domain.LanguageFrequency(i.LanguageFrequency).IsValid() {
		errs = append(errs, domain.FieldError{Field: "language_frequency", Message: "invalid value"})
	}
	if !domain.FileType(i.FileType).IsValid() {
		errs = append(errs, domain.FieldError{Field: "file_type", Message: "invalid value"})
	}
	if i.SpeakerID == nil {
		errs = append(errs, domain.FieldError{Field: "speaker", Message: "required"})
	}
	if i.OnomatopoeiaTypeID == nil {
		errs = append(errs, domain.FieldError{Field: "onomatopoeia_type", Message: "required"})
	}
	errs = validDate(errs, "recorded_date", i.RecordedDate)
	errs = validFile(errs, "file", i.File, true, maxBytes)
	errs = validFile(errs, "thumbnail", i.Thumbnail, false, maxBytes)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// GeographicInput holds the fields of the geographic record upload form.
// Coordinates are optional but must come as a pair. Without them Address
// is geocoded, and failing that the village location is used.
type GeographicInput struct {
	Title        string
	ContentType  string
	Description  string
	VillageID    *int64
	Latitude     *float64
	Longitude    *float64
	Address      string
	CapturedDate string
	File         *File
	Thumbnail    *File
}

// Validate checks all fields and collects all errors.
func (i GeographicInput) Validate(maxBytes int64) error {
	var errs []domain.FieldError

	errs = required(errs, "title", i.Title)
	errs = required(errs, "description", i.Description)
	if !domain.ContentType(i.ContentType).IsValid() {
		errs = append(errs, domain.FieldError{Field: "content_type", Message: "invalid value"})
	}
	if i.VillageID == nil {
		errs = append(errs, domain.FieldError{Field: "village", Message: "required"})
	}

	switch {
	case (i.Latitude == nil) != (i.Longitude == nil):
		errs = append(errs, domain.FieldError{Field: "latitude", Message: "latitude and longitude must be given together"})
	case i.Latitude != nil:
		if *i.Latitude < -90 || *i.Latitude > 90 {
			errs = append(errs, domain.FieldError{Field: "latitude", Message: "must be between -90 and 90"})
		}
		if *i.Longitude < -180 || *i.Longitude > 180 {
			errs = append(errs, domain.FieldError{Field: "longitude", Message: "must be between -180 and 180"})
		}
	}

	errs = validDate(errs, "captured_date", i.CapturedDate)
	errs = validFile(errs, "file", i.File, true, maxBytes)
	errs = validFile(errs, "thumbnail", i.Thumbnail, false, maxBytes)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func required(errs []domain.FieldError, field, v string) []domain.FieldError {
	if strings.TrimSpace(v) == "" {
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	return errs
}

func validDate(errs []domain.FieldError, field, v string) []domain.FieldError {
	v = strings.TrimSpace(v)
	if v == "" {
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	if _, err := time.Parse(dateLayout, v); err != nil {
		return append(errs, domain.FieldError{Field: field, Message: "must be YYYY-MM-DD"})
	}
	return errs
}

func validFile(errs []domain.FieldError, field string, f *File, isRequired bool, maxBytes int64) []domain.FieldError {
	if f == nil || f.Body == nil {
		if isRequired {
			return append(errs, domain.FieldError{Field: field, Message: "required"})
		}
		return errs
	}
	if maxBytes > 0 && f.Size > maxBytes {
		return append(errs, domain.FieldError{Field: field, Message: "file is too large"})
	}
	return errs
}

// parseDate is only called on validated input.
func parseDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, strings.TrimSpace(s))
	return t
}
