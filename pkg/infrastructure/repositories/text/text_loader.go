package text

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/vsinha/botplan/pkg/domain/entities"
)

var (
	blueprintPattern = regexp.MustCompile(`Blueprint\s+(\d+)\s*:`)
	robotPattern     = regexp.MustCompile(`Each\s+(\w+)\s+robot\s+costs\s+([^.]+)\.`)
	amountPattern    = regexp.MustCompile(`(\d+)\s+(\w+)`)
	andPattern       = regexp.MustCompile(`\s+and\s+`)
)

// Loader reads blueprints written as puzzle text, for example
//
//	Blueprint 1: Each ore robot costs 4 ore. Each clay robot costs 2 ore. ...
//
// A blueprint may span several lines.
type Loader struct {
	chain entities.Chain
}

// NewLoader creates a text loader for the given resource chain
func NewLoader(chain entities.Chain) *Loader {
	return &Loader{chain: chain}
}

// LoadBlueprints loads blueprints from a text file
func (l *Loader) LoadBlueprints(filename string) ([]*entities.Blueprint, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open blueprints file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadBlueprints(file)
}

// ReadBlueprints parses every blueprint in r
func (l *Loader) ReadBlueprints(r io.Reader) ([]*entities.Blueprint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprints text: %w", err)
	}
	content := string(data)

	headers := blueprintPattern.FindAllStringSubmatchIndex(content, -1)
	if len(headers) == 0 {
		return nil, fmt.Errorf("no blueprints found")
	}

	blueprints := make([]*entities.Blueprint, 0, len(headers))
	for n, loc := range headers {
		id, err := strconv.Atoi(content[loc[2]:loc[3]])
		if err != nil {
			return nil, fmt.Errorf("invalid blueprint number %q: %w", content[loc[2]:loc[3]], err)
		}

		end := len(content)
		if n+1 < len(headers) {
			end = headers[n+1][0]
		}

		table, err := parseCosts(content[loc[1]:end])
		if err != nil {
			return nil, fmt.Errorf("blueprint %d: %w", id, err)
		}

		bp, err := entities.NewBlueprint(id, l.chain, table)
		if err != nil {
			return nil, err
		}
		blueprints = append(blueprints, bp)
	}

	return blueprints, nil
}

func parseCosts(body string) (entities.CostTable, error) {
	robots := robotPattern.FindAllStringSubmatch(body, -1)
	if len(robots) == 0 {
		return nil, fmt.Errorf("no robot costs found")
	}

	table := make(entities.CostTable, len(robots))
	for _, m := range robots {
		robot := entities.ResourceType(strings.ToLower(m[1]))
		if _, exists := table[robot]; exists {
			return nil, fmt.Errorf("duplicate %s robot", robot)
		}

		row := make(map[entities.ResourceType]int)
		for _, part := range andPattern.Split(m[2], -1) {
			amount := amountPattern.FindStringSubmatch(part)
			if amount == nil {
				return nil, fmt.Errorf("cannot parse %s robot cost %q", robot, strings.TrimSpace(part))
			}
			qty, err := strconv.Atoi(amount[1])
			if err != nil {
				return nil, fmt.Errorf("invalid %s robot cost %q: %w", robot, amount[1], err)
			}
			row[entities.ResourceType(strings.ToLower(amount[2]))] += qty
		}
		table[robot] = row
	}

	return table, nil
}
