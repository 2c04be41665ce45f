package seeder

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

const sampleFixture = `
villages:
  - name: 湾
    latitude: 28.3211
    longitude: 129.9378
  - name: 志戸桶
    address: 鹿児島県大島郡喜界町志戸桶
onomatopoeia_types:
  - code: giongo
    name: 擬音語
speakers:
  - speaker_id: SP001
    age_range: 80-89
    gender: F
    village: 湾
    consent_video: true
`

func TestParseFixture(t *testing.T) {
	t.Parallel()

	fx, err := ParseFixture(strings.NewReader(sampleFixture))
	require.NoError(t, err)

	require.Len(t, fx.Villages, 2)
	require.NotNil(t, fx.Villages[0].Latitude)
	assert.InDelta(t, 28.3211, *fx.Villages[0].Latitude, 1e-9)
	assert.Nil(t, fx.Villages[1].Latitude)
	assert.Equal(t, "鹿児島県大島郡喜界町志戸桶", fx.Villages[1].Address)

	require.Len(t, fx.Types, 1)
	assert.Equal(t, "giongo", fx.Types[0].Code)

	require.Len(t, fx.Speakers, 1)
	assert.Equal(t, "湾", fx.Speakers[0].Village)
	assert.True(t, fx.Speakers[0].ConsentVideo)
}

func TestParseFixture_Empty(t *testing.T) {
	t.Parallel()

	fx, err := ParseFixture(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, fx.Villages)
}

func TestParseFixture_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := ParseFixture(strings.NewReader("villages:\n  - name: 湾\n    lat: 28.3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode fixture")
}

func TestFixture_Validate(t *testing.T) {
	t.Parallel()

	lat := 28.3
	tests := []struct {
		name  string
		fx    Fixture
		field string
	}{
		{
			name:  "village without name",
			fx:    Fixture{Villages: []VillageSeed{{Name: " "}}},
			field: "villages[0]",
		},
		{
			name:  "duplicate village",
			fx:    Fixture{Villages: []VillageSeed{{Name: "湾"}, {Name: "湾"}}},
			field: "villages[1]",
		},
		{
			name:  "half coordinates",
			fx:    Fixture{Villages: []VillageSeed{{Name: "湾", Latitude: &lat}}},
			field: "villages[0]",
		},
		{
			name:  "type without name",
			fx:    Fixture{Types: []TypeSeed{{Code: "giongo"}}},
			field: "onomatopoeia_types[0]",
		},
		{
			name:  "invalid age range",
			fx:    Fixture{Speakers: []SpeakerSeed{{SpeakerID: "SP1", AgeRange: "20-29", Gender: "M"}}},
			field: "speakers[0]",
		},
		{
			name:  "unknown village",
			fx:    Fixture{Speakers: []SpeakerSeed{{SpeakerID: "SP1", AgeRange: "70-79", Gender: "M", Village: "湾"}}},
			field: "speakers[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.fx.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Len(t, ve.Errors, 1)
			assert.Equal(t, tt.field, ve.Errors[0].Field)
		})
	}
}
