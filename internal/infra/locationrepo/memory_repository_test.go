package locationrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weatherfit/internal/domain/location"
)

func TestMemoryRepositoryKeepsSingleDefault(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	home, err := repo.Create(ctx, location.Location{UserID: 1, Name: "Home", IsDefault: true})
	require.NoError(t, err)
	office, err := repo.Create(ctx, location.Location{UserID: 1, Name: "Office", IsDefault: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, location.Location{UserID: 2, Name: "Elsewhere", IsDefault: true})
	require.NoError(t, err)

	def, err := repo.Default(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, office.ID, def.ID)

	reloaded, err := repo.Get(ctx, 1, home.ID)
	require.NoError(t, err)
	require.False(t, reloaded.IsDefault)

	home.IsDefault = true
	_, err = repo.Update(ctx, home)
	require.NoError(t, err)
	def, err = repo.Default(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, home.ID, def.ID)

	other, err := repo.Default(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "Elsewhere", other.Name)

	require.NoError(t, repo.Delete(ctx, 1, home.ID))
	_, err = repo.Default(ctx, 1)
	require.ErrorIs(t, err, location.ErrNotFound)

	list, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
