package events

import (
	"github.com/vsinha/botplan/pkg/application/dto"
	"github.com/vsinha/botplan/pkg/domain/entities"
)

const (
	RunStartedEvent   = "run.started"
	RunCompletedEvent = "run.completed"

	SearchStartedEvent   = "search.started"
	YieldImprovedEvent   = "search.yield_improved"
	SearchCompletedEvent = "search.completed"
	SearchTruncatedEvent = "search.truncated"
)

type RunStarted struct {
	Blueprints int `json:"blueprints"`
	Horizon    int `json:"horizon"`
	Workers    int `json:"workers"`
}

type RunCompleted struct {
	QualitySum   int `json:"quality_sum"`
	YieldProduct int `json:"yield_product"`
}

type SearchStarted struct {
	BlueprintID int                `json:"blueprint_id"`
	Horizon     int                `json:"horizon"`
	Costs       entities.CostTable `json:"costs"`
}

type YieldImproved struct {
	BlueprintID int                  `json:"blueprint_id"`
	Yield       int                  `json:"yield"`
	State       entities.SearchState `json:"state"`
}

type SearchCompleted struct {
	Result dto.SearchResult `json:"result"`
}

type SearchTruncated struct {
	Result dto.SearchResult `json:"result"`
	Reason string           `json:"reason"`
}
