package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vsinha/botplan/pkg/domain/entities"
)

// Loader handles loading blueprint cost tables from CSV files
type Loader struct {
	chain entities.Chain
}

// NewLoader creates a new CSV loader for the given resource chain
func NewLoader(chain entities.Chain) *Loader {
	return &Loader{chain: chain}
}

var expectedHeader = []string{"blueprint_id", "robot", "resource", "cost"}

// LoadBlueprints loads blueprints from a CSV file.
// Each row charges one resource to one robot type of one blueprint; a robot
// that costs nothing still needs a row with cost 0.
func (l *Loader) LoadBlueprints(filename string) ([]*entities.Blueprint, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open blueprints file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadBlueprints(file)
}

// ReadBlueprints parses blueprints from CSV content
func (l *Loader) ReadBlueprints(r io.Reader) ([]*entities.Blueprint, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprints CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("blueprints CSV must have header and at least one data row")
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("blueprints CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	var order []int
	tables := make(map[int]entities.CostTable)
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("blueprints CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		id, robot, resource, cost, err := parseCostRow(record)
		if err != nil {
			return nil, fmt.Errorf("blueprints CSV row %d: %w", i+2, err)
		}

		table, exists := tables[id]
		if !exists {
			table = make(entities.CostTable)
			tables[id] = table
			order = append(order, id)
		}
		row, exists := table[robot]
		if !exists {
			row = make(map[entities.ResourceType]int)
			table[robot] = row
		}
		if _, dup := row[resource]; dup {
			return nil, fmt.Errorf("blueprints CSV row %d: duplicate cost for %s robot and %s", i+2, robot, resource)
		}
		row[resource] = cost
	}

	blueprints := make([]*entities.Blueprint, 0, len(order))
	for _, id := range order {
		bp, err := entities.NewBlueprint(id, l.chain, tables[id])
		if err != nil {
			return nil, fmt.Errorf("invalid blueprint in CSV: %w", err)
		}
		blueprints = append(blueprints, bp)
	}

	return blueprints, nil
}

// Helper functions for parsing CSV records

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseCostRow(record []string) (int, entities.ResourceType, entities.ResourceType, int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return 0, "", "", 0, fmt.Errorf("invalid blueprint_id: %s", record[0])
	}

	robot := entities.ResourceType(strings.ToLower(strings.TrimSpace(record[1])))
	if robot == "" {
		return 0, "", "", 0, fmt.Errorf("robot cannot be empty")
	}

	resource := entities.ResourceType(strings.ToLower(strings.TrimSpace(record[2])))
	if resource == "" {
		return 0, "", "", 0, fmt.Errorf("resource cannot be empty")
	}

	cost, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil {
		return 0, "", "", 0, fmt.Errorf("invalid cost: %s", record[3])
	}

	return id, robot, resource, cost, nil
}
