package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// UploadLanguageRecord validates the form, stores the file (and optional
// thumbnail) and creates the record. When the database write fails, the
// stored objects are deleted again.
func (s *Service) UploadLanguageRecord(ctx context.Context, in LanguageInput) (*domain.LanguageRecord, error) {
	if err := in.Validate(s.maxBytes); err != nil {
		return nil, err
	}
	if err := s.checkLanguageRefs(ctx, in); err != nil {
		return nil, err
	}

	bucket := BucketFor(in.FileType)
	fileURL, fileObj, err := s.put(ctx, bucket, "language/"+in.FileType+"/", in.File)
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}
	stored := []storedObject{fileObj}

	rec := domain.LanguageRecord{
		OnomatopoeiaText:   strings.TrimSpace(in.OnomatopoeiaText),
		Meaning:            strings.TrimSpace(in.Meaning),
		UsageExample:       strings.TrimSpace(in.UsageExample),
		PhoneticNotation:   strings.TrimSpace(in.PhoneticNotation),
		LanguageFrequency:  domain.LanguageFrequency(in.LanguageFrequency),
		FileType:           domain.FileType(in.FileType),
		FilePath:           fileURL,
		SpeakerID:          in.SpeakerID,
		OnomatopoeiaTypeID: in.OnomatopoeiaTypeID,
		RecordedDate:       parseDate(in.RecordedDate),
		Notes:              strings.TrimSpace(in.Notes),
	}

	if in.Thumbnail != nil && in.Thumbnail.Body != nil {
		thumbURL, thumbObj, err := s.put(ctx, BucketFor(string(domain.FileTypeImage)), "thumbnails/", in.Thumbnail)
		if err != nil {
			s.discard(ctx, stored...)
			return nil, fmt.Errorf("upload thumbnail: %w", err)
		}
		stored = append(stored, thumbObj)
		rec.ThumbnailPath = &thumbURL
	}

	created, err := s.records.Create(ctx, rec)
	if err != nil {
		s.discard(ctx, stored...)
		return nil, fmt.Errorf("create record: %w", err)
	}

	s.log.InfoContext(ctx, "language record uploaded",
		slog.Int64("record_id", created.ID),
		slog.String("file_type", in.FileType),
		slog.String("file_path", created.FilePath),
	)
	return created, nil
}

func (s *Service) checkLanguageRefs(ctx context.Context, in LanguageInput) error {
	var errs []domain.FieldError

	if _, err := s.speakers.GetByID(ctx, *in.SpeakerID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("check speaker: %w", err)
		}
		errs = append(errs, domain.FieldError{Field: "speaker", Message: "speaker does not exist"})
	}
	if _, err := s.types.GetByID(ctx, *in.OnomatopoeiaTypeID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("check type: %w", err)
		}
		errs = append(errs, domain.FieldError{Field: "onomatopoeia_type", Message: "type does not exist"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
