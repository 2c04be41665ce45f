package domain

import (
	"time"
)

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Village is a settlement on the island. Coordinates are always present.
type Village struct {
	ID          int64
	Name        string
	Latitude    float64
	Longitude   float64
	Description string
}

func (v Village) Coords() LatLng {
	return LatLng{Lat: v.Latitude, Lon: v.Longitude}
}

// Speaker is an anonymized informant identified by an external code.
type Speaker struct {
	ID           int64
	SpeakerID    string
	AgeRange     AgeRange
	Gender       Gender
	VillageID    *int64
	ConsentVideo bool
	Notes        string
	CreatedAt    time.Time
}

// OnomatopoeiaType classifies onomatopoeia by a short code.
type OnomatopoeiaType struct {
	ID          int64
	TypeCode    string
	TypeName    string
	Description string
}

// LanguageRecord is one recorded onomatopoeia sample. The village is
// reached through the speaker and is not stored on the record.
type LanguageRecord struct {
	ID                 int64
	OnomatopoeiaText   string
	Meaning            string
	UsageExample       string
	PhoneticNotation   string
	LanguageFrequency  LanguageFrequency
	FileType           FileType
	FilePath           string
	ThumbnailPath      *string
	SpeakerID          *int64
	OnomatopoeiaTypeID *int64
	RecordedDate       time.Time
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RecordDetail is a language record with its relations resolved.
// Any relation may be nil.
type RecordDetail struct {
	LanguageRecord
	Speaker *Speaker
	Village *Village
	Type    *OnomatopoeiaType
}

// GeographicRecord is drone footage or another environmental media item.
type GeographicRecord struct {
	ID            int64
	Title         string
	ContentType   ContentType
	FilePath      string
	ThumbnailPath *string
	Description   string
	VillageID     *int64
	Latitude      *float64
	Longitude     *float64
	CapturedDate  time.Time
	CreatedAt     time.Time
}

// Coords returns the record's own location, if both coordinates are set.
func (g GeographicRecord) Coords() (LatLng, bool) {
	if g.Latitude == nil || g.Longitude == nil {
		return LatLng{}, false
	}
	return LatLng{Lat: *g.Latitude, Lon: *g.Longitude}, true
}

// GeographicDetail is a geographic record with its village resolved.
type GeographicDetail struct {
	GeographicRecord
	Village *Village
}

// SpeakerLocation pairs a speaker with the village that locates them on the map.
type SpeakerLocation struct {
	Speaker Speaker
	Village Village
}

// ArchiveSummary holds the counters shown on the landing page.
type ArchiveSummary struct {
	TotalRecords  int
	TotalVillages int
	TotalSpeakers int
	RecentRecords []RecordDetail
}
