package upload

import (
	"context"
	"fmt"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// Form carries the choice tables and reference rows an upload form needs.
type Form struct {
	Frequencies  []domain.Choice
	FileTypes    []domain.Choice
	ContentTypes []domain.Choice
	Speakers     []domain.Speaker
	Types        []domain.OnomatopoeiaType
	Villages     []domain.Village
}

// LanguageForm returns the options of the language record form.
func (s *Service) LanguageForm(ctx context.Context) (*Form, error) {
	speakers, err := s.speakers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	types, err := s.types.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list types: %w", err)
	}
	return &Form{
		Frequencies: domain.FrequencyChoices(),
		FileTypes:   domain.FileTypeChoices(),
		Speakers:    speakers,
		Types:       types,
	}, nil
}

// GeographicForm returns the options of the geographic record form. The
// villages carry coordinates for the client-side location picker.
func (s *Service) GeographicForm(ctx context.Context) (*Form, error) {
	villages, err := s.villages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list villages: %w", err)
	}
	return &Form{
		ContentTypes: domain.ContentTypeChoices(),
		Villages:     villages,
	}, nil
}
