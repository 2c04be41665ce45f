package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// Summary returns the landing page counters and the most recent records.
// The four reads are independent and run concurrently.
func (s *Service) Summary(ctx context.Context) (*domain.ArchiveSummary, error) {
	var out domain.ArchiveSummary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.records.Count(gctx)
		if err != nil {
			return fmt.Errorf("count records: %w", err)
		}
		out.TotalRecords = n
		return nil
	})
	g.Go(func() error {
		n, err := s.villages.CountWithRecords(gctx)
		if err != nil {
			return fmt.Errorf("count villages: %w", err)
		}
		out.TotalVillages = n
		return nil
	})
	g.Go(func() error {
		n, err := s.speakers.Count(gctx)
		if err != nil {
			return fmt.Errorf("count speakers: %w", err)
		}
		out.TotalSpeakers = n
		return nil
	})
	g.Go(func() error {
		recent, err := s.records.ListRecent(gctx, RecentRecordsLimit)
		if err != nil {
			return fmt.Errorf("list recent: %w", err)
		}
		out.RecentRecords = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
