package mapview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

func ptrFloat(f float64) *float64 { return &f }

func located(id int64, code string, v domain.Village) domain.SpeakerLocation {
	return domain.SpeakerLocation{
		Speaker: domain.Speaker{ID: id, SpeakerID: code, AgeRange: domain.AgeRange70s, Gender: domain.GenderFemale},
		Village: v,
	}
}

func geo(id int64, ct domain.ContentType, lat, lon *float64) domain.GeographicDetail {
	return domain.GeographicDetail{GeographicRecord: domain.GeographicRecord{
		ID:          id,
		Title:       "集落の空撮",
		ContentType: ct,
		FilePath:    "https://example.supabase.co/storage/v1/object/public/drone-footage/a.mp4",
		Description: "湾集落",
		Latitude:    lat,
		Longitude:   lon,
	}}
}

var wan = domain.Village{ID: 1, Name: "湾", Latitude: 28.3214, Longitude: 129.9259}

func TestBuildMarkers_DroneVideo(t *testing.T) {
	t.Parallel()

	markers, err := BuildMarkers(nil, []domain.GeographicDetail{
		geo(7, domain.ContentTypeDroneVideo, ptrFloat(28.30), ptrFloat(129.90)),
	})
	require.NoError(t, err)
	require.Len(t, markers, 1)

	m := markers[0]
	assert.Equal(t, 28.30, m.Latitude)
	assert.Equal(t, 129.90, m.Longitude)
	assert.Equal(t, CategoryGeographic, m.Category)
	assert.Equal(t, "blue", m.Color)
	assert.Equal(t, "camera", m.Icon)
	assert.Equal(t, "ドローン映像", m.Popup.TypeLabel)
	assert.Equal(t, "/geographic/7/", m.Popup.DetailURL)
	assert.NotEmpty(t, m.Geohash)
	assert.Contains(t, string(m.Popup.HTML), "ドローン映像")
}

func TestBuildMarkers_UnknownContentTypeFallsBack(t *testing.T) {
	t.Parallel()

	markers, err := BuildMarkers(nil, []domain.GeographicDetail{
		geo(1, domain.ContentType("unknown_value"), ptrFloat(28.3), ptrFloat(129.9)),
	})
	require.NoError(t, err)
	require.Len(t, markers, 1)
	assert.Equal(t, domain.GenericGeographicLabel, markers[0].Popup.TypeLabel)
}

func TestBuildMarkers_SkipsUnlocatedAndKeepsOrder(t *testing.T) {
	t.Parallel()

	north := domain.Village{ID: 2, Name: "小野津", Latitude: 28.35, Longitude: 129.97}
	speakers := []domain.SpeakerLocation{located(1, "KK-001", wan), located(2, "KK-002", north)}
	records := []domain.GeographicDetail{
		geo(10, domain.ContentTypeDronePhoto, ptrFloat(28.31), ptrFloat(129.91)),
		geo(11, domain.ContentTypeOther, nil, nil),
		geo(12, domain.ContentTypeOther, ptrFloat(28.32), nil),
		geo(13, domain.ContentTypeDroneVideo, ptrFloat(28.33), ptrFloat(129.93)),
	}

	markers, err := BuildMarkers(speakers, records)
	require.NoError(t, err)
	require.Len(t, markers, 4)

	var titles []string
	for _, m := range markers {
		titles = append(titles, m.Popup.DetailURL)
	}
	assert.Equal(t, []string{"/speaker/1/records/", "/speaker/2/records/", "/geographic/10/", "/geographic/13/"}, titles)

	assert.Equal(t, CategorySpeaker, markers[0].Category)
	assert.Equal(t, "green", markers[0].Color)
	assert.Equal(t, "microphone", markers[0].Icon)
	assert.Equal(t, SpeakerLabel, markers[0].Popup.TypeLabel)
	assert.Equal(t, "70代・女性", markers[0].Popup.Description)
	assert.Equal(t, "湾", markers[0].Popup.Location)
	assert.Equal(t, wan.Latitude, markers[0].Latitude)
}

func TestBuildMarkers_Idempotent(t *testing.T) {
	t.Parallel()

	speakers := []domain.SpeakerLocation{located(1, "KK-001", wan)}
	records := []domain.GeographicDetail{geo(10, domain.ContentTypeDronePhoto, ptrFloat(28.31), ptrFloat(129.91))}

	first, err := BuildMarkers(speakers, records)
	require.NoError(t, err)
	second, err := BuildMarkers(speakers, records)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildMarkers_NearbyShareGeohashPrefix(t *testing.T) {
	t.Parallel()

	a := domain.Village{ID: 1, Name: "a", Latitude: 28.32140, Longitude: 129.92590}
	b := domain.Village{ID: 2, Name: "b", Latitude: 28.32150, Longitude: 129.92600}

	markers, err := BuildMarkers([]domain.SpeakerLocation{located(1, "x", a), located(2, "y", b)}, nil)
	require.NoError(t, err)
	require.Len(t, markers, 2)
	assert.Equal(t, markers[0].Geohash[:5], markers[1].Geohash[:5])
}

func TestBuildMarkers_PopupEscapesHTML(t *testing.T) {
	t.Parallel()

	g := geo(3, domain.ContentTypeOther, ptrFloat(28.3), ptrFloat(129.9))
	g.Title = `<script>alert(1)</script>`

	markers, err := BuildMarkers(nil, []domain.GeographicDetail{g})
	require.NoError(t, err)
	html := string(markers[0].Popup.HTML)
	assert.False(t, strings.Contains(html, "<script>"), "popup not escaped: %s", html)
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestBuildMarkers_Empty(t *testing.T) {
	t.Parallel()

	markers, err := BuildMarkers(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, markers)
}
