package record

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres"
	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// applyFilter adds a WHERE clause for every non-empty filter field.
// Speaker and village columns come from LEFT JOINs, so village filtering
// drops records without a speaker.
func applyFilter(b sq.SelectBuilder, f domain.RecordFilter) sq.SelectBuilder {
	if f.VillageID != nil {
		b = b.Where(sq.Eq{"s.village_id": *f.VillageID})
	}
	if f.SpeakerID != nil {
		b = b.Where(sq.Eq{"lr.speaker_id": *f.SpeakerID})
	}
	if f.FileType != "" {
		b = b.Where(sq.Eq{"lr.file_type": string(f.FileType)})
	}
	if f.TypeCode != "" {
		b = b.Where(sq.Eq{"t.type_code": f.TypeCode})
	}
	if f.Query != "" {
		p := postgres.ContainsPattern(f.Query)
		b = b.Where(sq.Or{
			postgres.FoldedILike("lr.onomatopoeia_text", p),
			postgres.FoldedILike("lr.meaning", p),
		})
	}
	if f.Year != nil {
		b = b.Where(sq.Eq{"EXTRACT(YEAR FROM lr.recorded_date)": *f.Year})
	}
	return b
}
