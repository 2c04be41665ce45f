package registry

import (
	"strings"
	"unicode/utf8"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

const (
	maxNameLength = 100
	maxCodeLength = 50
)

// VillageInput holds the fields of a village.
type VillageInput struct {
	Name        string   `json:"name"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Description string   `json:"description"`
}

// Validate checks all fields and collects all errors.
func (i VillageInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if utf8.RuneCountInString(name) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 100 characters"})
	}

	if i.Latitude == nil {
		errs = append(errs, domain.FieldError{Field: "latitude", Message: "required"})
	} else if *i.Latitude < -90 || *i.Latitude > 90 {
		errs = append(errs, domain.FieldError{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if i.Longitude == nil {
		errs = append(errs, domain.FieldError{Field: "longitude", Message: "required"})
	} else if *i.Longitude < -180 || *i.Longitude > 180 {
		errs = append(errs, domain.FieldError{Field: "longitude", Message: "must be between -180 and 180"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i VillageInput) toDomain(id int64) domain.Village {
	return domain.Village{
		ID:          id,
		Name:        strings.TrimSpace(i.Name),
		Latitude:    *i.Latitude,
		Longitude:   *i.Longitude,
		Description: strings.TrimSpace(i.Description),
	}
}

// SpeakerInput holds the fields of a speaker.
type SpeakerInput struct {
	SpeakerID    string `json:"speaker_id"`
	AgeRange     string `json:"age_range"`
	Gender       string `json:"gender"`
	VillageID    *int64 `json:"village_id"`
	ConsentVideo bool   `json:"consent_video"`
	Notes        string `json:"notes"`
}

// Validate checks all fields and collects all errors.
func (i SpeakerInput) Validate() error {
	var errs []domain.FieldError

	code := strings.TrimSpace(i.SpeakerID)
	if code == "" {
		errs = append(errs, domain.FieldError{Field: "speaker_id", Message: "required"})
	} else if utf8.RuneCountInString(code) > maxCodeLength {
		errs = append(errs, domain.FieldError{Field: "speaker_id", Message: "max 50 characters"})
	}
	if !domain.AgeRange(i.AgeRange).IsValid() {
		errs = append(errs, domain.FieldError{Field: "age_range", Message: "invalid value"})
	}
	if !domain.Gender(i.Gender).IsValid() {
		errs = append(errs, domain.FieldError{Field: "gender", Message: "invalid value"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i SpeakerInput) toDomain(id int64) domain.Speaker {
	return domain.Speaker{
		ID:           id,
		SpeakerID:    strings.TrimSpace(i.SpeakerID),
		AgeRange:     domain.AgeRange(i.AgeRange),
		Gender:       domain.Gender(i.Gender),
		VillageID:    i.VillageID,
		ConsentVideo: i.ConsentVideo,
		Notes:        strings.TrimSpace(i.Notes),
	}
}

// TypeInput holds the fields of an onomatopoeia type.
type TypeInput struct {
	TypeCode    string `json:"type_code"`
	TypeName    string `json:"type_name"`
	Description string `json:"description"`
}

// Validate checks all fields and collects all errors.
func (i TypeInput) Validate() error {
	var errs []domain.FieldError

	code := strings.TrimSpace(i.TypeCode)
	if code == "" {
		errs = append(errs, domain.FieldError{Field: "type_code", Message: "required"})
	} else if utf8.RuneCountInString(code) > maxCodeLength {
		errs = append(errs, domain.FieldError{Field: "type_code", Message: "max 50 characters"})
	}
	name := strings.TrimSpace(i.TypeName)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "type_name", Message: "required"})
	} else if utf8.RuneCountInString(name) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "type_name", Message: "max 100 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i TypeInput) toDomain(id int64) domain.OnomatopoeiaType {
	return domain.OnomatopoeiaType{
		ID:          id,
		TypeCode:    strings.TrimSpace(i.TypeCode),
		TypeName:    strings.TrimSpace(i.TypeName),
		Description: strings.TrimSpace(i.Description),
	}
}
