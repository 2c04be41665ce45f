package rest

import (
	"time"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
	"github.com/Miru57o/kikai-language-archive/internal/service/catalog"
	"github.com/Miru57o/kikai-language-archive/internal/service/mapview"
	"github.com/Miru57o/kikai-language-archive/internal/service/upload"
)

const dateLayout = "2006-01-02"

type villageResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
}

func toVillageResponse(v domain.Village) villageResponse {
	return villageResponse{
		ID:          v.ID,
		Name:        v.Name,
		Latitude:    v.Latitude,
		Longitude:   v.Longitude,
		Description: v.Description,
	}
}

func toVillageResponses(vs []domain.Village) []villageResponse {
	out := make([]villageResponse, len(vs))
	for i, v := range vs {
		out[i] = toVillageResponse(v)
	}
	return out
}

type speakerResponse struct {
	ID            int64     `json:"id"`
	SpeakerID     string    `json:"speaker_id"`
	AgeRange      string    `json:"age_range"`
	AgeRangeLabel string    `json:"age_range_label"`
	Gender        string    `json:"gender"`
	GenderLabel   string    `json:"gender_label"`
	VillageID     *int64    `json:"village_id"`
	ConsentVideo  bool      `json:"consent_video"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

func toSpeakerResponse(s domain.Speaker) speakerResponse {
	return speakerResponse{
		ID:            s.ID,
		SpeakerID:     s.SpeakerID,
		AgeRange:      string(s.AgeRange),
		AgeRangeLabel: s.AgeRange.Label(),
		Gender:        string(s.Gender),
		GenderLabel:   s.Gender.Label(),
		VillageID:     s.VillageID,
		ConsentVideo:  s.ConsentVideo,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
	}
}

func toSpeakerResponses(ss []domain.Speaker) []speakerResponse {
	out := make([]speakerResponse, len(ss))
	for i, s := range ss {
		out[i] = toSpeakerResponse(s)
	}
	return out
}

type typeResponse struct {
	ID          int64  `json:"id"`
	TypeCode    string `json:"type_code"`
	TypeName    string `json:"type_name"`
	Description string `json:"description"`
}

func toTypeResponse(t domain.OnomatopoeiaType) typeResponse {
	return typeResponse{ID: t.ID, TypeCode: t.TypeCode, TypeName: t.TypeName, Description: t.Description}
}

func toTypeResponses(ts []domain.OnomatopoeiaType) []typeResponse {
	out := make([]typeResponse, len(ts))
	for i, t := range ts {
		out[i] = toTypeResponse(t)
	}
	return out
}

type geographicResponse struct {
	ID               int64          `json:"id"`
	Title            string         `json:"title"`
	ContentType      string         `json:"content_type"`
	ContentTypeLabel string         `json:"content_type_label"`
	FilePath         string         `json:"file_path"`
	ThumbnailPath    *string        `json:"thumbnail_path"`
	Description      string         `json:"description"`
	Village          *VillageRef    `json:"village"`
	Location         *domain.LatLng `json:"location"`
	CapturedDate     string         `json:"captured_date"`
	CreatedAt        time.Time      `json:"created_at"`
}

func toGeographicResponse(g domain.GeographicDetail) geographicResponse {
	out := geographicResponse{
		ID:               g.ID,
		Title:            g.Title,
		ContentType:      string(g.ContentType),
		ContentTypeLabel: g.ContentType.Label(),
		FilePath:         g.FilePath,
		ThumbnailPath:    g.ThumbnailPath,
		Description:      g.Description,
		CapturedDate:     g.CapturedDate.Format(dateLayout),
		CreatedAt:        g.CreatedAt,
	}
	if g.Village != nil {
		id := g.Village.ID
		out.Village = &VillageRef{ID: &id, Name: g.Village.Name}
	}
	if ll, ok := g.Coords(); ok {
		out.Location = &ll
	}
	return out
}

func toGeographicResponses(gs []domain.GeographicDetail) []geographicResponse {
	out := make([]geographicResponse, len(gs))
	for i, g := range gs {
		out[i] = toGeographicResponse(g)
	}
	return out
}

// ---------------------------------------------------------------------------
// Page payloads
// ---------------------------------------------------------------------------

type summaryResponse struct {
	TotalRecords  int          `json:"total_records"`
	TotalVillages int          `json:"total_villages"`
	TotalSpeakers int          `json:"total_speakers"`
	RecentRecords []RecordJSON `json:"recent_records"`
}

type recordFilterResponse struct {
	Village          *int64 `json:"village"`
	FileType         string `json:"file_type,omitempty"`
	OnomatopoeiaType string `json:"onomatopoeia_type,omitempty"`
}

type recordListResponse struct {
	Records   []RecordJSON         `json:"records"`
	Filter    recordFilterResponse `json:"filter"`
	Villages  []villageResponse    `json:"villages"`
	Types     []typeResponse       `json:"types"`
	FileTypes []domain.Choice      `json:"file_types"`
}

func toRecordListResponse(l *catalog.RecordList) recordListResponse {
	return recordListResponse{
		Records: formatRecords(l.Records),
		Filter: recordFilterResponse{
			Village:          l.Filter.VillageID,
			FileType:         string(l.Filter.FileType),
			OnomatopoeiaType: l.Filter.TypeCode,
		},
		Villages:  toVillageResponses(l.Villages),
		Types:     toTypeResponses(l.Types),
		FileTypes: domain.FileTypeChoices(),
	}
}

type searchResponse struct {
	Query   string       `json:"query"`
	Records []RecordJSON `json:"records"`
}

type recordDetailResponse struct {
	Record RecordJSON `json:"record"`
	Place  string     `json:"place,omitempty"`
}

type geographicListResponse struct {
	Records      []geographicResponse `json:"records"`
	ContentType  string               `json:"content_type,omitempty"`
	Village      *int64               `json:"village"`
	Villages     []villageResponse    `json:"villages"`
	ContentTypes []domain.Choice      `json:"content_types"`
}

func toGeographicListResponse(l *catalog.GeographicList) geographicListResponse {
	return geographicListResponse{
		Records:      toGeographicResponses(l.Records),
		ContentType:  string(l.Filter.ContentType),
		Village:      l.Filter.VillageID,
		Villages:     toVillageResponses(l.Villages),
		ContentTypes: domain.ContentTypeChoices(),
	}
}

type geographicDetailResponse struct {
	Record geographicResponse `json:"record"`
	Place  string             `json:"place,omitempty"`
}

type villageRecordsResponse struct {
	Village villageResponse `json:"village"`
	Records []RecordJSON    `json:"records"`
}

type speakerRecordsResponse struct {
	Speaker speakerResponse `json:"speaker"`
	Records []RecordJSON    `json:"records"`
}

// ---------------------------------------------------------------------------
// Map
// ---------------------------------------------------------------------------

type popupResponse struct {
	Title       string `json:"title"`
	TypeLabel   string `json:"type_label"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	DetailURL   string `json:"detail_url"`
	MediaURL    string `json:"media_url,omitempty"`
	HTML        string `json:"html"`
}

type markerResponse struct {
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Geohash   string        `json:"geohash"`
	Category  string        `json:"category"`
	Color     string        `json:"color"`
	Icon      string        `json:"icon"`
	Popup     popupResponse `json:"popup"`
}

type mapSettingsResponse struct {
	Center      domain.LatLng `json:"center"`
	Zoom        int           `json:"zoom"`
	TileURL     string        `json:"tile_url"`
	Attribution string        `json:"attribution"`
}

type mapResponse struct {
	Settings mapSettingsResponse `json:"settings"`
	Markers  []markerResponse    `json:"markers"`
	Years    []int               `json:"years"`
	Year     *int                `json:"year"`
}

func toMapResponse(v *mapview.View) mapResponse {
	markers := make([]markerResponse, len(v.Markers))
	for i, m := range v.Markers {
		markers[i] = markerResponse{
			Latitude:  m.Latitude,
			Longitude: m.Longitude,
			Geohash:   m.Geohash,
			Category:  string(m.Category),
			Color:     m.Color,
			Icon:      m.Icon,
			Popup: popupResponse{
				Title:       m.Popup.Title,
				TypeLabel:   m.Popup.TypeLabel,
				Description: m.Popup.Description,
				Location:    m.Popup.Location,
				DetailURL:   m.Popup.DetailURL,
				MediaURL:    m.Popup.MediaURL,
				HTML:        string(m.Popup.HTML),
			},
		}
	}
	years := v.Years
	if years == nil {
		years = []int{}
	}
	return mapResponse{
		Settings: mapSettingsResponse{
			Center:      domain.LatLng{Lat: v.Settings.CenterLat, Lon: v.Settings.CenterLon},
			Zoom:        v.Settings.Zoom,
			TileURL:     v.Settings.TileURL,
			Attribution: v.Settings.Attribution,
		},
		Markers: markers,
		Years:   years,
		Year:    v.Year,
	}
}

// ---------------------------------------------------------------------------
// Upload forms
// ---------------------------------------------------------------------------

type formResponse struct {
	Frequencies  []domain.Choice   `json:"frequencies,omitempty"`
	FileTypes    []domain.Choice   `json:"file_types,omitempty"`
	ContentTypes []domain.Choice   `json:"content_types,omitempty"`
	Speakers     []speakerResponse `json:"speakers,omitempty"`
	Types        []typeResponse    `json:"types,omitempty"`
	Villages     []villageResponse `json:"villages,omitempty"`
}

func toFormResponse(f *upload.Form) formResponse {
	out := formResponse{
		Frequencies:  f.Frequencies,
		FileTypes:    f.FileTypes,
		ContentTypes: f.ContentTypes,
	}
	if f.Speakers != nil {
		out.Speakers = toSpeakerResponses(f.Speakers)
	}
	if f.Types != nil {
		out.Types = toTypeResponses(f.Types)
	}
	if f.Villages != nil {
		out.Villages = toVillageResponses(f.Villages)
	}
	return out
}

type languageRecordResponse struct {
	ID                 int64   `json:"id"`
	OnomatopoeiaText   string  `json:"onomatopoeia_text"`
	FileType           string  `json:"file_type"`
	FilePath           string  `json:"file_path"`
	ThumbnailPath      *string `json:"thumbnail_path"`
	SpeakerID          *int64  `json:"speaker_id"`
	OnomatopoeiaTypeID *int64  `json:"onomatopoeia_type_id"`
	RecordedDate       string  `json:"recorded_date"`
}

func toLanguageRecordResponse(r *domain.LanguageRecord) languageRecordResponse {
	return languageRecordResponse{
		ID:                 r.ID,
		OnomatopoeiaText:   r.OnomatopoeiaText,
		FileType:           string(r.FileType),
		FilePath:           r.FilePath,
		ThumbnailPath:      r.ThumbnailPath,
		SpeakerID:          r.SpeakerID,
		OnomatopoeiaTypeID: r.OnomatopoeiaTypeID,
		RecordedDate:       r.RecordedDate.Format(dateLayout),
	}
}

func toCreatedGeographicResponse(g *domain.GeographicRecord) geographicResponse {
	return toGeographicResponse(domain.GeographicDetail{GeographicRecord: *g})
}
