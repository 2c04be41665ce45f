package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

func (s *Service) ListSpeakers(ctx context.Context) ([]domain.Speaker, error) {
	return s.speakers.List(ctx)
}

func (s *Service) GetSpeaker(ctx context.Context, id int64) (*domain.Speaker, error) {
	return s.speakers.GetByID(ctx, id)
}

// CreateSpeaker validates and stores a new speaker. A referenced village
// must exist.
func (s *Service) CreateSpeaker(ctx context.Context, in SpeakerInput) (*domain.Speaker, error) {
	if err := s.validateSpeaker(ctx, in); err != nil {
		return nil, err
	}

	sp, err := s.speakers.Create(ctx, in.toDomain(0))
	if err != nil {
		return nil, fmt.Errorf("create speaker: %w", err)
	}

	s.log.InfoContext(ctx, "speaker created", slog.Int64("id", sp.ID), slog.String("speaker_id", sp.SpeakerID))
	return sp, nil
}

func (s *Service) UpdateSpeaker(ctx context.Context, id int64, in SpeakerInput) (*domain.Speaker, error) {
	if err := s.validateSpeaker(ctx, in); err != nil {
		return nil, err
	}

	sp, err := s.speakers.Update(ctx, in.toDomain(id))
	if err != nil {
		return nil, fmt.Errorf("update speaker: %w", err)
	}
	return sp, nil
}

// DeleteSpeaker removes a speaker. Speakers referenced by language records
// are protected and yield domain.ErrConflict.
func (s *Service) DeleteSpeaker(ctx context.Context, id int64) error {
	if err := s.speakers.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete speaker: %w", err)
	}
	s.log.InfoContext(ctx, "speaker deleted", slog.Int64("id", id))
	return nil
}

func (s *Service) validateSpeaker(ctx context.Context, in SpeakerInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if in.VillageID == nil {
		return nil
	}

	if _, err := s.villages.GetByID(ctx, *in.VillageID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("village_id", "village does not exist")
		}
		return fmt.Errorf("check village: %w", err)
	}
	return nil
}
