package seeder

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// Fixture is the YAML document describing the reference data.
type Fixture struct {
	Villages []VillageSeed `yaml:"villages"`
	Types    []TypeSeed    `yaml:"onomatopoeia_types"`
	Speakers []SpeakerSeed `yaml:"speakers"`
}

// VillageSeed may omit coordinates; they are then geocoded from Address,
// or from the village name when Address is empty too.
type VillageSeed struct {
	Name        string   `yaml:"name"`
	Latitude    *float64 `yaml:"latitude"`
	Longitude   *float64 `yaml:"longitude"`
	Address     string   `yaml:"address"`
	Description string   `yaml:"description"`
}

type TypeSeed struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// SpeakerSeed references its village by name.
type SpeakerSeed struct {
	SpeakerID    string `yaml:"speaker_id"`
	AgeRange     string `yaml:"age_range"`
	Gender       string `yaml:"gender"`
	Village      string `yaml:"village"`
	ConsentVideo bool   `yaml:"consent_video"`
	Notes        string `yaml:"notes"`
}

// LoadFixture reads and validates the fixture at path.
func LoadFixture(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	return ParseFixture(f)
}

// ParseFixture decodes a fixture. Unknown keys are rejected so typos do
// not silently drop data.
func ParseFixture(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx Fixture
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if err := fx.Validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// Validate checks the fixture as a whole: required fields, enum values,
// duplicate keys and speaker-to-village references.
func (fx *Fixture) Validate() error {
	var errs []domain.FieldError
	add := func(field, format string, args ...any) {
		errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	villages := make(map[string]bool, len(fx.Villages))
	for i, v := range fx.Villages {
		field := fmt.Sprintf("villages[%d]", i)
		name := strings.TrimSpace(v.Name)
		switch {
		case name == "":
			add(field, "name is required")
		case villages[name]:
			add(field, "duplicate village %q", name)
		}
		villages[name] = true
		if (v.Latitude == nil) != (v.Longitude == nil) {
			add(field, "latitude and longitude must be given together")
		}
	}

	codes := make(map[string]bool, len(fx.Types))
	for i, t := range fx.Types {
		field := fmt.Sprintf("onomatopoeia_types[%d]", i)
		code := strings.TrimSpace(t.Code)
		switch {
		case code == "":
			add(field, "code is required")
		case codes[code]:
			add(field, "duplicate code %q", code)
		}
		codes[code] = true
		if strings.TrimSpace(t.Name) == "" {
			add(field, "name is required")
		}
	}

	speakers := make(map[string]bool, len(fx.Speakers))
	for i, s := range fx.Speakers {
		field := fmt.Sprintf("speakers[%d]", i)
		id := strings.TrimSpace(s.SpeakerID)
		switch {
		case id == "":
			add(field, "speaker_id is required")
		case speakers[id]:
			add(field, "duplicate speaker_id %q", id)
		}
		speakers[id] = true
		if !domain.AgeRange(s.AgeRange).IsValid() {
			add(field, "invalid age_range %q", s.AgeRange)
		}
		if !domain.Gender(s.Gender).IsValid() {
			add(field, "invalid gender %q", s.Gender)
		}
		if v := strings.TrimSpace(s.Village); v != "" && !villages[v] {
			add(field, "unknown village %q", v)
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
