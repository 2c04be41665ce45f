// Package seeder loads a YAML fixture of villages, onomatopoeia types and
// speakers and upserts it into the archive.
package seeder

import (
	"context"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// Repos are implemented by the postgres village, onomatype and speaker
// repositories. Upserts are keyed by village name, type code and speaker_id.

type VillageRepo interface {
	Upsert(ctx context.Context, v domain.Village) (*domain.Village, error)
}

type TypeRepo interface {
	Upsert(ctx context.Context, t domain.OnomatopoeiaType) (*domain.OnomatopoeiaType, error)
}

type SpeakerRepo interface {
	Upsert(ctx context.Context, s domain.Speaker) (*domain.Speaker, error)
}

// Geocoder resolves village addresses that come without coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.LatLng, bool)
}

// TxRunner is implemented by postgres.TxManager.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
