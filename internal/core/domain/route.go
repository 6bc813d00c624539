package domain

import "fmt"

// RouteKind is the outcome class of routing a question.
type RouteKind string

const (
	RouteSingle    RouteKind = "single"
	RouteCross     RouteKind = "cross"
	RouteUncertain RouteKind = "uncertain"
)

// RouteResult is produced fresh per question and never persisted.
type RouteResult struct {
	Kind    RouteKind        `json:"kind"`
	Domains []DomainID       `json:"domains"`
	Scores  map[DomainID]int `json:"scores"`
}

// IsUncertain reports whether the caller must ask the user to pick a domain.
func (r RouteResult) IsUncertain() bool {
	return r.Kind == RouteUncertain
}

// Label is the conversation attribution for this route: the domain identifier
// for single routes, CrossLabel for cross routes, empty when uncertain.
func (r RouteResult) Label() string {
	switch r.Kind {
	case RouteSingle:
		if len(r.Domains) > 0 {
			return string(r.Domains[0])
		}
	case RouteCross:
		return CrossLabel
	}
	return ""
}

// RouterConfig holds the routing heuristics.
type RouterConfig struct {
	// ConfidenceFloor is the minimum top score for a confident route.
	ConfidenceFloor int `yaml:"confidence_floor" json:"confidence_floor"`
	// CrossRatio is the fraction of the top score another domain needs to join a cross route.
	CrossRatio float64 `yaml:"cross_ratio" json:"cross_ratio"`
}

// DefaultRouterConfig returns the stock thresholds
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		ConfidenceFloor: 2,
		CrossRatio:      0.5,
	}
}

// Validate checks the thresholds are usable
func (c RouterConfig) Validate() error {
	if c.ConfidenceFloor < 1 {
		return fmt.Errorf("%w: confidence floor must be at least 1, got %d", ErrInvalidInput, c.ConfidenceFloor)
	}
	if c.CrossRatio <= 0 || c.CrossRatio > 1 {
		return fmt.Errorf("%w: cross ratio must be in (0, 1], got %g", ErrInvalidInput, c.CrossRatio)
	}
	return nil
}
