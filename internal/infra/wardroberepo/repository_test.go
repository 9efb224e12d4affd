package wardroberepo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weatherfit/internal/domain/wardrobe"
)

func TestRepositories(t *testing.T) {
	sqliteRepo, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "wardrobe.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteRepo.Close() })

	repos := map[string]wardrobe.Repository{
		"memory": NewMemoryRepository(),
		"sqlite": sqliteRepo,
	}
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			exerciseRepository(t, repo)
		})
	}
}

func exerciseRepository(t *testing.T, repo wardrobe.Repository) {
	ctx := context.Background()
	create := func(userID int64, name string, category wardrobe.Category, notes string) wardrobe.Item {
		item, err := repo.Create(ctx, wardrobe.Item{
			UserID:     userID,
			Name:       name,
			Category:   category,
			Insulation: wardrobe.InsulationMedium,
			Formality:  wardrobe.FormalityCasual,
			Notes:      notes,
		})
		require.NoError(t, err)
		require.NotZero(t, item.ID)
		return item
	}

	shirt := create(1, "Oxford Shirt", wardrobe.CategoryTop, "")
	create(1, "Chinos", wardrobe.CategoryBottom, "khaki")
	create(1, "Polo", wardrobe.CategoryTop, "")
	create(2, "Other Shirt", wardrobe.CategoryTop, "")

	got, err := repo.Get(ctx, 1, shirt.ID)
	require.NoError(t, err)
	require.Equal(t, "Oxford Shirt", got.Name)
	require.Empty(t, got.Color)

	_, err = repo.Get(ctx, 2, shirt.ID)
	require.ErrorIs(t, err, wardrobe.ErrNotFound)

	all, err := repo.ListAll(ctx, 1)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Less(t, all[0].ID, all[1].ID)

	tops, total, err := repo.List(ctx, 1, wardrobe.Filter{Category: wardrobe.CategoryTop, Limit: 1})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, tops, 1)
	require.Equal(t, shirt.ID, tops[0].ID)

	second, _, err := repo.List(ctx, 1, wardrobe.Filter{Category: wardrobe.CategoryTop, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, second, 1)
	require.Equal(t, "Polo", second[0].Name)

	khaki, total, err := repo.List(ctx, 1, wardrobe.Filter{Query: "KHAKI"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "Chinos", khaki[0].Name)

	shirt.Waterproof = true
	shirt.Color = "white"
	updated, err := repo.Update(ctx, shirt)
	require.NoError(t, err)
	require.True(t, updated.Waterproof)
	require.Equal(t, "white", updated.Color)

	foreign := shirt
	foreign.UserID = 2
	_, err = repo.Update(ctx, foreign)
	require.ErrorIs(t, err, wardrobe.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, 1, shirt.ID))
	require.ErrorIs(t, repo.Delete(ctx, 1, shirt.ID), wardrobe.ErrNotFound)
}
