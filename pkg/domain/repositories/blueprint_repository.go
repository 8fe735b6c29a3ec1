package repositories

import (
	"errors"

	"github.com/vsinha/botplan/pkg/domain/entities"
)

// ErrBlueprintNotFound is returned when no blueprint has the requested ID
var ErrBlueprintNotFound = errors.New("blueprint not found")

// BlueprintRepository provides access to blueprint cost tables
type BlueprintRepository interface {
	GetBlueprint(id int) (*entities.Blueprint, error)
	// GetAllBlueprints returns blueprints in load order
	GetAllBlueprints() ([]*entities.Blueprint, error)
	LoadBlueprints(blueprints []*entities.Blueprint) error
}
