package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// UploadGeographicRecord validates the form, resolves the location, stores
// the media and creates the record.
func (s *Service) UploadGeographicRecord(ctx context.Context, in GeographicInput) (*domain.GeographicRecord, error) {
	if err := in.Validate(s.maxBytes); err != nil {
		return nil, err
	}

	village, err := s.villages.GetByID(ctx, *in.VillageID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("village", "village does not exist")
		}
		return nil, fmt.Errorf("check village: %w", err)
	}

	loc := s.resolveLocation(ctx, in, village)

	fileURL, fileObj, err := s.put(ctx, BucketFor(in.ContentType), "geographic/"+in.ContentType+"/", in.File)
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}
	stored := []storedObject{fileObj}

	rec := domain.GeographicRecord{
		Title:        strings.TrimSpace(in.Title),
		ContentType:  domain.ContentType(in.ContentType),
		FilePath:     fileURL,
		Description:  strings.TrimSpace(in.Description),
		VillageID:    &village.ID,
		Latitude:     &loc.Lat,
		Longitude:    &loc.Lon,
		CapturedDate: parseDate(in.CapturedDate),
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

	created, err := s.geographic.Create(ctx, rec)
	if err != nil {
		s.discard(ctx, stored...)
		return nil, fmt.Errorf("create geographic record: %w", err)
	}

	s.log.InfoContext(ctx, "geographic record uploaded",
		slog.Int64("record_id", created.ID),
		slog.String("content_type", in.ContentType),
		slog.Float64("lat", loc.Lat),
		slog.Float64("lon", loc.Lon),
	)
	return created, nil
}

// resolveLocation picks explicit coordinates, then a geocoded address,
// then the village location.
func (s *Service) resolveLocation(ctx context.Context, in GeographicInput, v *domain.Village) domain.LatLng {
	if in.Latitude != nil && in.Longitude != nil {
		return domain.LatLng{Lat: *in.Latitude, Lon: *in.Longitude}
	}
	if addr := strings.TrimSpace(in.Address); addr != "" {
		if ll, ok := s.geocoder.Geocode(ctx, addr); ok {
			return ll
		}
		s.log.InfoContext(ctx, "address not found, using village location",
			slog.String("address", addr),
			slog.Int64("village_id", v.ID),
		)
	}
	return v.Coords()
}
