// Package screening applies named threshold strategies to a factor
// table. Each strategy is a conjunction of predicates over factor
// columns: a predicate over an absent column is skipped, a null cell
// in a present column fails its predicate, and a strategy with no
// applicable predicates passes every row by convention.
package screening

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/screenconfig"
)

// ErrUnknownStrategy is returned for strategy names the registry does
// not know. Callers treat this as invalid input, not a degraded run.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy screens a factor table against one named rule set
type Strategy interface {
	// Name returns the registry key, e.g. "value"
	Name() string

	// Description returns a one-line human summary
	Description() string

	// RequiredMetrics lists the factor columns the strategy wants
	RequiredMetrics() []string

	// Apply returns one pass flag per table row
	Apply(table *contracts.FactorTable, cfg *screenconfig.Config) []bool

	// Summarize reports per-metric isolated pass rates, for
	// diagnosing which constraint is binding
	Summarize(table *contracts.FactorTable, cfg *screenconfig.Config) *contracts.FilterSummary
}

// predicate is one threshold test over a single factor column
type predicate struct {
	metric string
	test   func(cfg *screenconfig.Config, v float64) bool
}

// thresholdStrategy is the shared conjunction engine behind every
// built-in strategy
type thresholdStrategy struct {
	name        string
	description string
	predicates  []predicate
}

func (s *thresholdStrategy) Name() string        { return s.name }
func (s *thresholdStrategy) Description() string { return s.description }

func (s *thresholdStrategy) RequiredMetrics() []string {
	metrics := make([]string, len(s.predicates))
	for i, p := range s.predicates {
		metrics[i] = p.metric
	}
	return metrics
}

// Apply evaluates the conjunction per row. Predicates over absent
// columns are skipped; if none apply, every row passes.
func (s *thresholdStrategy) Apply(table *contracts.FactorTable, cfg *screenconfig.Config) []bool {
	passed := make([]bool, table.Len())
	for i := range passed {
		passed[i] = true
	}

	for _, p := range s.predicates {
		col, ok := table.Column(p.metric)
		if !ok {
			continue
		}
		for i, v := range col {
			if v == nil || !p.test(cfg, *v) {
				passed[i] = false
			}
		}
	}
	return passed
}

// Summarize evaluates each applicable predicate in isolation
func (s *thresholdStrategy) Summarize(table *contracts.FactorTable, cfg *screenconfig.Config) *contracts.FilterSummary {
	total := table.Len()
	summary := &contracts.FilterSummary{
		Strategy:  s.name,
		TotalRows: total,
	}

	for _, flag := range s.Apply(table, cfg) {
		if flag {
			summary.PassedAll++
		}
	}

	for _, p := range s.predicates {
		col, ok := table.Column(p.metric)
		if !ok {
			continue
		}

		passed := 0
		for _, v := range col {
			if v != nil && p.test(cfg, *v) {
				passed++
			}
		}

		rate := 0.0
		if total > 0 {
			rate = float64(passed) / float64(total)
		}
		summary.Metrics = append(summary.Metrics, contracts.MetricSummary{
			Metric:   p.metric,
			Passed:   passed,
			PassRate: rate,
		})
	}

	return summary
}

// Registry maps strategy names to implementations. Constructed once
// per process and passed to the screening entry point, never a
// package-level singleton.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry creates a registry with the four built-in strategies
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}
	r.Register(NewValueStrategy())
	r.Register(NewGrowthStrategy())
	r.Register(NewQualityStrategy())
	r.Register(NewBuffettStrategy())
	return r
}

// Register adds or replaces a strategy under its own name
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Name()] = s
}

// Get looks up a strategy by name
func (r *Registry) Get(name string) (Strategy, error) {
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
	return s, nil
}

// Names returns the registered strategy names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered strategies in name order
func (r *Registry) All() []Strategy {
	all := make([]Strategy, 0, len(r.strategies))
	for _, name := range r.Names() {
		all = append(all, r.strategies[name])
	}
	return all
}
