//go:build integration

package record_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres/record"
	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres/testhelper"
	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

func TestRepo_Filters_Integration(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := record.New(pool)
	ctx := context.Background()

	v := testhelper.SeedVillage(t, pool, 28.32, 129.93)
	spk := testhelper.SeedSpeaker(t, pool, &v.ID)
	typ := testhelper.SeedType(t, pool)

	unique := "ＺＵＮ" + time.Now().Format("150405.000000")
	hit := testhelper.SeedRecord(t, pool, unique, &spk.ID, &typ.ID, time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC))
	orphan := testhelper.SeedRecord(t, pool, "orphan", nil, nil, time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC))

	t.Run("village filter is a subset through speaker", func(t *testing.T) {
		got, err := repo.List(ctx, domain.RecordFilter{VillageID: &v.ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, hit.ID, got[0].ID)
		require.NotNil(t, got[0].Village)
		assert.Equal(t, v.ID, got[0].Village.ID)
	})

	t.Run("search is width-folded and idempotent", func(t *testing.T) {
		f := domain.RecordFilter{Query: domain.NormalizeQuery(unique)}
		first, err := repo.List(ctx, f)
		require.NoError(t, err)
		second, err := repo.List(ctx, f)
		require.NoError(t, err)
		require.Len(t, first, 1)
		assert.Equal(t, first, second)
	})

	t.Run("search with no match", func(t *testing.T) {
		got, err := repo.List(ctx, domain.RecordFilter{Query: "no-such-onomatopoeia-" + unique})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("year restricts", func(t *testing.T) {
		year := 2019
		got, err := repo.List(ctx, domain.RecordFilter{Year: &year})
		require.NoError(t, err)
		ids := make([]int64, len(got))
		for i, d := range got {
			ids[i] = d.ID
			assert.Equal(t, 2019, d.RecordedDate.Year())
		}
		assert.Contains(t, ids, orphan.ID)
		assert.NotContains(t, ids, hit.ID)
	})

	t.Run("search matches meaning only", func(t *testing.T) {
		marker := "意味だけ" + time.Now().Format("150405.000000")
		only := testhelper.SeedRecordWithMeaning(t, pool, "ピカピカ", "光る様子 "+marker, nil, nil,
			time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC))

		got, err := repo.List(ctx, domain.RecordFilter{Query: domain.NormalizeQuery(marker)})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, only.ID, got[0].ID)
	})

	t.Run("half-width query finds full-width record", func(t *testing.T) {
		digits := time.Now().Format("150405000000")
		stored := testhelper.SeedRecord(t, pool, "ゴロゴロ"+digits, nil, nil,
			time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC))

		got, err := repo.List(ctx, domain.RecordFilter{Query: domain.NormalizeQuery("ｺﾞﾛｺﾞﾛ" + digits)})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, stored.ID, got[0].ID)
	})

	t.Run("empty query returns the whole collection", func(t *testing.T) {
		total, err := repo.Count(ctx)
		require.NoError(t, err)

		got, err := repo.List(ctx, domain.RecordFilter{Query: domain.NormalizeQuery("  　 ")})
		require.NoError(t, err)
		assert.Len(t, got, total)
	})

	t.Run("orphan record resolves to nil relations", func(t *testing.T) {
		got, err := repo.GetByID(ctx, orphan.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Speaker)
		assert.Nil(t, got.Village)
		assert.Nil(t, got.Type)
	})
}
