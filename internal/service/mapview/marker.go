package mapview

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	geohash "github.com/TomiHiltunen/geohash-golang"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// Category tells the map widget which icon set a marker uses.
type Category string

const (
	CategorySpeaker    Category = "speaker"
	CategoryGeographic Category = "geographic"
)

// SpeakerLabel is the type label shown in speaker popups.
const SpeakerLabel = "話者"

type style struct {
	color string
	icon  string
}

var styles = map[Category]style{
	CategorySpeaker:    {color: "green", icon: "microphone"},
	CategoryGeographic: {color: "blue", icon: "camera"},
}

// Popup is the descriptive content of a marker.
type Popup struct {
	Title       string
	TypeLabel   string
	Description string
	Location    string
	DetailURL   string
	MediaURL    string
	HTML        template.HTML
}

// Marker is one located entity on the map.
type Marker struct {
	Latitude  float64
	Longitude float64
	// Geohash lets the widget cluster nearby markers by shared prefix.
	Geohash  string
	Category Category
	Color    string
	Icon     string
	Popup    Popup
}

var popupTmpl = template.Must(template.New("popup").Parse(
	`<div class="map-popup map-popup-{{.Category}}">` +
		`<h5><i class="fas fa-{{.Icon}}" style="color: {{.Color}};"></i> {{.Popup.Title}}</h5>` +
		`<p><strong>種類:</strong> {{.Popup.TypeLabel}}</p>` +
		`{{with .Popup.Description}}<p>{{.}}</p>{{end}}` +
		`{{with .Popup.Location}}<p><i class="fas fa-map-marker-alt"></i> {{.}}</p>{{end}}` +
		`<a href="{{.Popup.DetailURL}}" target="_top">詳細を見る</a>` +
		`{{with .Popup.MediaURL}} <a href="{{.}}" target="_blank">表示する</a>{{end}}` +
		`</div>`))

// BuildMarkers turns located speakers and geographic records into markers.
// Speakers come first, then geographic records, each in input order.
// Geographic records without coordinates are skipped.
func BuildMarkers(speakers []domain.SpeakerLocation, geo []domain.GeographicDetail) ([]Marker, error) {
	out := make([]Marker, 0, len(speakers)+len(geo))

	for _, sl := range speakers {
		m, err := newMarker(CategorySpeaker, sl.Village.Coords(), speakerPopup(sl))
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	for _, g := range geo {
		ll, ok := g.Coords()
		if !ok {
			continue
		}
		m, err := newMarker(CategoryGeographic, ll, geographicPopup(g))
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, nil
}

func newMarker(c Category, ll domain.LatLng, p Popup) (Marker, error) {
	st := styles[c]
	m := Marker{
		Latitude:  ll.Lat,
		Longitude: ll.Lon,
		Geohash:   geohash.Encode(ll.Lat, ll.Lon),
		Category:  c,
		Color:     st.color,
		Icon:      st.icon,
		Popup:     p,
	}

	var buf bytes.Buffer
	if err := popupTmpl.Execute(&buf, m); err != nil {
		return Marker{}, fmt.Errorf("render popup: %w", err)
	}
	m.Popup.HTML = template.HTML(buf.String())
	return m, nil
}

func speakerPopup(sl domain.SpeakerLocation) Popup {
	return Popup{
		Title:       sl.Speaker.SpeakerID,
		TypeLabel:   SpeakerLabel,
		Description: sl.Speaker.AgeRange.Label() + "・" + sl.Speaker.Gender.Label(),
		Location:    sl.Village.Name,
		DetailURL:   "/speaker/" + strconv.FormatInt(sl.Speaker.ID, 10) + "/records/",
	}
}

func geographicPopup(g domain.GeographicDetail) Popup {
	p := Popup{
		Title:       g.Title,
		TypeLabel:   g.ContentType.Label(),
		Description: g.Description,
		DetailURL:   "/geographic/" + strconv.FormatInt(g.ID, 10) + "/",
		MediaURL:    g.FilePath,
	}
	if g.Village != nil {
		p.Location = g.Village.Name
	}
	return p
}
