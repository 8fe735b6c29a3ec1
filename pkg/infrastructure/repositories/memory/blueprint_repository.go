package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/botplan/pkg/domain/entities"
	"github.com/vsinha/botplan/pkg/domain/repositories"
)

// BlueprintRepository provides in-memory blueprint storage
type BlueprintRepository struct {
	blueprints []*entities.Blueprint
	index      map[int]int
	mutex      sync.RWMutex
}

// NewBlueprintRepository creates a new in-memory blueprint repository
func NewBlueprintRepository(expected int) *BlueprintRepository {
	return &BlueprintRepository{
		blueprints: make([]*entities.Blueprint, 0, expected),
		index:      make(map[int]int, expected),
	}
}

// Verify interface compliance
var _ repositories.BlueprintRepository = (*BlueprintRepository)(nil)

// LoadBlueprints loads blueprints into the repository
func (r *BlueprintRepository) LoadBlueprints(blueprints []*entities.Blueprint) error {
	for _, bp := range blueprints {
		if err := r.SaveBlueprint(bp); err != nil {
			return err
		}
	}
	return nil
}

// SaveBlueprint adds a blueprint; IDs must be unique
func (r *BlueprintRepository) SaveBlueprint(bp *entities.Blueprint) error {
	if bp == nil {
		return fmt.Errorf("blueprint cannot be nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.index[bp.ID()]; exists {
		return fmt.Errorf("blueprint %d already exists", bp.ID())
	}
	r.index[bp.ID()] = len(r.blueprints)
	r.blueprints = append(r.blueprints, bp)
	return nil
}

// GetBlueprint returns the blueprint with the given ID
func (r *BlueprintRepository) GetBlueprint(id int) (*entities.Blueprint, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	i, exists := r.index[id]
	if !exists {
		return nil, fmt.Errorf("%w: %d", repositories.ErrBlueprintNotFound, id)
	}
	return r.blueprints[i], nil
}

// GetAllBlueprints returns all blueprints in load order
func (r *BlueprintRepository) GetAllBlueprints() ([]*entities.Blueprint, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]*entities.Blueprint, len(r.blueprints))
	copy(out, r.blueprints)
	return out, nil
}

// Count returns the number of stored blueprints
func (r *BlueprintRepository) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.blueprints)
}
