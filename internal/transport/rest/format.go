package rest

import (
	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// RecordDateLayout renders recorded_date in the archive's display form.
const RecordDateLayout = "2006年01月02日"

// RecordJSON is the flat API shape of a language record.
type RecordJSON struct {
	ID                int64           `json:"id"`
	Onomatopoeia      string          `json:"onomatopoeia"`
	Meaning           string          `json:"meaning"`
	UsageExample      string          `json:"usage_example"`
	PhoneticNotation  string          `json:"phonetic_notation"`
	LanguageFrequency string          `json:"language_frequency"`
	FileType          string          `json:"file_type"`
	FilePath          string          `json:"file_path"`
	ThumbnailPath     *string         `json:"thumbnail_path"`
	Speaker           *SpeakerSummary `json:"speaker"`
	Village           VillageRef      `json:"village"`
	Type              TypeRef         `json:"type"`
	RecordedDate      string          `json:"recorded_date"`
	Notes             string          `json:"notes"`
}

// SpeakerSummary is the speaker of a record with display labels.
type SpeakerSummary struct {
	SpeakerID string `json:"speaker_id"`
	AgeRange  string `json:"age_range"`
	Gender    string `json:"gender"`
	Village   string `json:"village"`
}

// VillageRef names a village; ID is null when the village is unknown.
type VillageRef struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

// TypeRef describes the onomatopoeia type; all fields are null when absent.
type TypeRef struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// FormatRecord flattens a record with its relations. Missing relations
// become null or domain.UnknownLabel, never an error.
func FormatRecord(d domain.RecordDetail) RecordJSON {
	out := RecordJSON{
		ID:                d.ID,
		Onomatopoeia:      d.OnomatopoeiaText,
		Meaning:           d.Meaning,
		UsageExample:      d.UsageExample,
		PhoneticNotation:  d.PhoneticNotation,
		LanguageFrequency: string(d.LanguageFrequency),
		FileType:          string(d.FileType),
		FilePath:          d.FilePath,
		ThumbnailPath:     d.ThumbnailPath,
		Village:           VillageRef{Name: domain.UnknownLabel},
		RecordedDate:      d.RecordedDate.Format(RecordDateLayout),
		Notes:             d.Notes,
	}

	if d.Speaker != nil {
		out.Speaker = &SpeakerSummary{
			SpeakerID: d.Speaker.SpeakerID,
			AgeRange:  string(d.Speaker.AgeRange),
			Gender:    d.Speaker.Gender.Label(),
			Village:   domain.UnknownLabel,
		}
		if d.Village != nil {
			out.Speaker.Village = d.Village.Name
		}
	}
	if d.Village != nil {
		id := d.Village.ID
		out.Village = VillageRef{ID: &id, Name: d.Village.Name}
	}
	if d.Type != nil {
		code, name, desc := d.Type.TypeCode, d.Type.TypeName, d.Type.Description
		out.Type = TypeRef{Code: &code, Name: &name, Description: &desc}
	}
	return out
}

func formatRecords(ds []domain.RecordDetail) []RecordJSON {
	out := make([]RecordJSON, len(ds))
	for i, d := range ds {
		out[i] = FormatRecord(d)
	}
	return out
}
