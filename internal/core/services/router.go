package services

import (
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driving"
)

// Ensure routerService implements RouterService
var _ driving.RouterService = (*routerService)(nil)

// Keyword weights
const (
	compoundHit   = 3
	longWordHit   = 2
	shortWordHit  = 1
	substringHit  = 1
	longWordRunes = 4
)

// routerService implements keyword-scoring domain classification
type routerService struct {
	registry *domain.Registry
	logger   *zap.Logger
}

// NewRouterService creates a new RouterService
func NewRouterService(registry *domain.Registry, logger *zap.Logger) driving.RouterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &routerService{
		registry: registry,
		logger:   logger,
	}
}

type domainScore struct {
	id    domain.DomainID
	score int
}

// Route scores every domain and decides single, cross or uncertain routing.
func (s *routerService) Route(question string) domain.RouteResult {
	tokens := Tokenize(question, ClassifierMinLen)
	domains := s.registry.Domains()

	result := domain.RouteResult{
		Kind:    domain.RouteUncertain,
		Domains: []domain.DomainID{},
		Scores:  make(map[domain.DomainID]int, len(domains)),
	}

	ranked := make([]domainScore, 0, len(domains))
	for _, d := range domains {
		score := ScoreKeywords(tokens, d.Keywords)
		result.Scores[d.ID] = score
		if score > 0 {
			ranked = append(ranked, domainScore{id: d.ID, score: score})
		}
	}
	// Stable so ties keep registry declaration order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	cfg := s.registry.Router()
	switch {
	case len(ranked) == 0:
	case ranked[0].score < cfg.ConfidenceFloor:
	default:
		threshold := float64(ranked[0].score) * cfg.CrossRatio
		var cross []domain.DomainID
		for _, r := range ranked {
			if float64(r.score) >= threshold {
				cross = append(cross, r.id)
			}
		}
		if len(cross) > 1 {
			result.Kind = domain.RouteCross
			result.Domains = cross
		} else {
			result.Kind = domain.RouteSingle
			result.Domains = []domain.DomainID{ranked[0].id}
		}
	}

	s.logger.Debug("routed question",
		zap.String("kind", string(result.Kind)),
		zap.Any("domains", result.Domains),
		zap.Any("scores", result.Scores),
	)
	return result
}

// Domains returns the registered domains in declaration order
func (s *routerService) Domains() []domain.DomainSummary {
	return s.registry.Summaries()
}

// ScoreKeywords sums keyword hits for one domain. Compound phrases score once
// when they occur anywhere in the question. Single words score by token match,
// long words counting double, or by a plain substring hit otherwise.
func ScoreKeywords(tokens Tokens, keywords []string) int {
	score := 0
	for _, kw := range keywords {
		switch {
		case domain.IsCompoundKeyword(kw):
			if strings.Contains(tokens.Lower, kw) {
				score += compoundHit
			}
		case tokens.Has(kw):
			if utf8.RuneCountInString(kw) > longWordRunes {
				score += longWordHit
			} else {
				score += shortWordHit
			}
		case strings.Contains(tokens.Lower, kw):
			score += substringHit
		}
	}
	return score
}
