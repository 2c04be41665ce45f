//go:build integration

package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedVillage inserts a village at the given coordinates.
func SeedVillage(t *testing.T, pool *pgxpool.Pool, lat, lon float64) domain.Village {
	t.Helper()

	v := domain.Village{
		Name:        "village-" + uniqueSuffix(),
		Latitude:    lat,
		Longitude:   lon,
		Description: "seeded",
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO villages (name, latitude, longitude, description) VALUES ($1, $2, $3, $4) RETURNING id`,
		v.Name, v.Latitude, v.Longitude, v.Description,
	).Scan(&v.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedVillage: %v", err)
	}
	return v
}

// SeedSpeaker inserts a speaker; villageID may be nil.
func SeedSpeaker(t *testing.T, pool *pgxpool.Pool, villageID *int64) domain.Speaker {
	t.Helper()

	s := domain.Speaker{
		SpeakerID: "SPK-" + uniqueSuffix(),
		AgeRange:  domain.AgeRange70s,
		Gender:    domain.GenderFemale,
		VillageID: villageID,
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO speakers (speaker_id, age_range, gender, village_id) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		s.SpeakerID, string(s.AgeRange), string(s.Gender), s.VillageID,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedSpeaker: %v", err)
	}
	return s
}

// SeedType inserts an onomatopoeia type with a unique code.
func SeedType(t *testing.T, pool *pgxpool.Pool) domain.OnomatopoeiaType {
	t.Helper()

	ot := domain.OnomatopoeiaType{
		TypeCode: "T" + uniqueSuffix(),
		TypeName: "擬音語",
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO onomatopoeia_types (type_code, type_name) VALUES ($1, $2) RETURNING id`,
		ot.TypeCode, ot.TypeName,
	).Scan(&ot.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedType: %v", err)
	}
	return ot
}

// SeedRecord inserts a language record whose meaning is derived from text.
// speakerID and typeID may be nil.
func SeedRecord(t *testing.T, pool *pgxpool.Pool, text string, speakerID, typeID *int64, recorded time.Time) domain.LanguageRecord {
	t.Helper()
	return SeedRecordWithMeaning(t, pool, text, "meaning of "+text, speakerID, typeID, recorded)
}

// SeedRecordWithMeaning inserts a language record with an explicit meaning.
func SeedRecordWithMeaning(t *testing.T, pool *pgxpool.Pool, text, meaning string, speakerID, typeID *int64, recorded time.Time) domain.LanguageRecord {
	t.Helper()

	r := domain.LanguageRecord{
		OnomatopoeiaText:   text,
		Meaning:            meaning,
		UsageExample:       "example",
		LanguageFrequency:  domain.FrequencyOften,
		FileType:           domain.FileTypeAudio,
		FilePath:           "https://storage.example.org/" + uniqueSuffix() + ".mp3",
		SpeakerID:          speakerID,
		OnomatopoeiaTypeID: typeID,
		RecordedDate:       recorded,
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO language_records
		    (onomatopoeia_text, meaning, usage_example, language_frequency, file_type, file_path,
		     speaker_id, onomatopoeia_type_id, recorded_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		r.OnomatopoeiaText, r.Meaning, r.UsageExample, string(r.LanguageFrequency), string(r.FileType), r.FilePath,
		r.SpeakerID, r.OnomatopoeiaTypeID, r.RecordedDate,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedRecord: %v", err)
	}
	return r
}

// SeedGeographic inserts a geographic record. Coordinates may be nil.
func SeedGeographic(t *testing.T, pool *pgxpool.Pool, title string, villageID *int64, lat, lon *float64, captured time.Time) domain.GeographicRecord {
	t.Helper()

	g := domain.GeographicRecord{
		Title:        title,
		ContentType:  domain.ContentTypeDroneVideo,
		FilePath:     "https://storage.example.org/" + uniqueSuffix() + ".mp4",
		VillageID:    villageID,
		Latitude:     lat,
		Longitude:    lon,
		CapturedDate: captured,
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO geographic_records (title, content_type, file_path, village_id, latitude, longitude, captured_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`,
		g.Title, string(g.ContentType), g.FilePath, g.VillageID, g.Latitude, g.Longitude, g.CapturedDate,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedGeographic: %v", err)
	}
	return g
}
