package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/botplan/pkg/domain/entities"
	"github.com/vsinha/botplan/pkg/domain/repositories"
)

func newBlueprint(t *testing.T, id int) *entities.Blueprint {
	t.Helper()
	bp, err := entities.NewBlueprint(id, entities.DefaultChain(), entities.CostTable{
		entities.Ore:      {entities.Ore: 4},
		entities.Clay:     {entities.Ore: 2},
		entities.Obsidian: {entities.Ore: 3, entities.Clay: 14},
		entities.Geode:    {entities.Ore: 2, entities.Obsidian: 7},
	})
	require.NoError(t, err)
	return bp
}

func TestBlueprintRepository_SaveAndGet(t *testing.T) {
	repo := NewBlueprintRepository(2)

	bp := newBlueprint(t, 7)
	require.NoError(t, repo.SaveBlueprint(bp))

	got, err := repo.GetBlueprint(7)
	require.NoError(t, err)
	assert.Same(t, bp, got)
	assert.Equal(t, 1, repo.Count())
}

func TestBlueprintRepository_SaveBlueprint_Errors(t *testing.T) {
	repo := NewBlueprintRepository(1)

	err := repo.SaveBlueprint(nil)
	assert.EqualError(t, err, "blueprint cannot be nil")

	require.NoError(t, repo.SaveBlueprint(newBlueprint(t, 1)))
	err = repo.SaveBlueprint(newBlueprint(t, 1))
	assert.EqualError(t, err, "blueprint 1 already exists")
}

func TestBlueprintRepository_GetBlueprint_NotFound(t *testing.T) {
	repo := NewBlueprintRepository(0)

	_, err := repo.GetBlueprint(42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repositories.ErrBlueprintNotFound))
	assert.Contains(t, err.Error(), "42")
}

func TestBlueprintRepository_GetAllBlueprints_LoadOrder(t *testing.T) {
	repo := NewBlueprintRepository(3)
	require.NoError(t, repo.LoadBlueprints([]*entities.Blueprint{
		newBlueprint(t, 3),
		newBlueprint(t, 1),
		newBlueprint(t, 2),
	}))

	all, err := repo.GetAllBlueprints()
	require.NoError(t, err)
	ids := make([]int, len(all))
	for i, bp := range all {
		ids[i] = bp.ID()
	}
	assert.Equal(t, []int{3, 1, 2}, ids)

	// Callers get their own slice
	all[0] = nil
	again, _ := repo.GetAllBlueprints()
	assert.NotNil(t, again[0])
}

func TestBlueprintRepository_LoadBlueprints_StopsOnDuplicate(t *testing.T) {
	repo := NewBlueprintRepository(3)
	err := repo.LoadBlueprints([]*entities.Blueprint{
		newBlueprint(t, 1),
		newBlueprint(t, 1),
	})
	assert.Error(t, err)
	assert.Equal(t, 1, repo.Count())
}

func TestBlueprintRepository_ConcurrentAccess(t *testing.T) {
	repo := NewBlueprintRepository(50)
	blueprints := make([]*entities.Blueprint, 50)
	for i := range blueprints {
		blueprints[i] = newBlueprint(t, i)
	}

	var wg sync.WaitGroup
	for _, bp := range blueprints {
		bp := bp
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.SaveBlueprint(bp))
			_, _ = repo.GetAllBlueprints()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, repo.Count())
}
