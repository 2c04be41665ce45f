package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// RecordFilter narrows a language record listing. Zero-valued fields are
// ignored. Listings are not paginated.
type RecordFilter struct {
	VillageID *int64
	SpeakerID *int64
	FileType  FileType
	TypeCode  string
	Query     string
	Year      *int
}

// GeographicFilter narrows a geographic record listing.
type GeographicFilter struct {
	VillageID   *int64
	ContentType ContentType
	Query       string
	Year        *int
}

// ParseRecordFilter reads recognised keys from query parameters.
// Malformed integers are treated as absent.
func ParseRecordFilter(v url.Values) RecordFilter {
	return RecordFilter{
		VillageID: parseID(v.Get("village")),
		SpeakerID: parseID(v.Get("speaker")),
		FileType:  FileType(strings.TrimSpace(v.Get("file_type"))),
		TypeCode:  strings.TrimSpace(v.Get("onomatopoeia_type")),
		Query:     NormalizeQuery(v.Get("q")),
		Year:      ParseYear(v.Get("year")),
	}
}

// ParseGeographicFilter reads recognised keys from query parameters.
func ParseGeographicFilter(v url.Values) GeographicFilter {
	return GeographicFilter{
		VillageID:   parseID(v.Get("village")),
		ContentType: ContentType(strings.TrimSpace(v.Get("content_type"))),
		Query:       NormalizeQuery(v.Get("q")),
		Year:        ParseYear(v.Get("year")),
	}
}

// ParseYear returns nil for empty or non-numeric input.
func ParseYear(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &y
}

func parseID(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
