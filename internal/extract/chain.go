package extract

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/canvasdeck/internal/capture"
)

// Strategy is one independent extraction attempt. Implementations must be
// pure: they read the capture and either produce fragments in document order
// or fail with a reason. They must not mutate the capture.
type Strategy interface {
	Name() string
	Extract(c *capture.Capture) ([]RawFragment, error)
}

// Attempt records one strategy's outcome for the diagnostic trail.
type Attempt struct {
	Strategy string
	Reason   string
}

// FailedError is returned when every strategy failed or produced nothing.
// It carries the full per-strategy trail so a failure can be diagnosed
// without re-running the chain.
type FailedError struct {
	Attempts []Attempt
}

func (e *FailedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Strategy+": "+a.Reason)
	}
	return "extraction failed: " + strings.Join(parts, "; ")
}

// Result is a successful extraction: the fragments and the strategy that won.
type Result struct {
	Strategy  string
	Fragments []RawFragment
}

// Empty reports whether extraction succeeded but the document had no content.
func (r Result) Empty() bool {
	return len(r.Fragments) == 0
}

// Chain runs strategies in declared priority order and returns the result of
// the first one that yields at least one fragment. A strategy that succeeds
// with zero fragments does not stop the chain, but its result is kept: if
// every later strategy also fails or comes up empty, the empty success is the
// final answer, so "empty document" stays distinguishable from "could not
// parse".
type Chain struct {
	Strategies []Strategy
}

// DefaultChain orders strategies most structurally specific first and most
// permissive last.
func DefaultChain() *Chain {
	return &Chain{Strategies: []Strategy{
		&CanvasDOMStrategy{},
		&HTMLBlockStrategy{},
		&TextDumpStrategy{},
	}}
}

// strategyForName maps a configured strategy name to a fresh instance.
func strategyForName(name string) (Strategy, bool) {
	switch name {
	case "canvas-dom":
		return &CanvasDOMStrategy{}, true
	case "html-blocks":
		return &HTMLBlockStrategy{}, true
	case "text-dump":
		return &TextDumpStrategy{}, true
	}
	return nil, false
}

// ChainFor builds a chain running the named strategies in the given order.
// An empty list selects the default order. Unknown names are an error so a
// typo in configuration fails loudly instead of silently skipping a strategy.
func ChainFor(names []string) (*Chain, error) {
	if len(names) == 0 {
		return DefaultChain(), nil
	}
	ch := &Chain{Strategies: make([]Strategy, 0, len(names))}
	for _, name := range names {
		s, ok := strategyForName(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown extraction strategy %q", name)
		}
		ch.Strategies = append(ch.Strategies, s)
	}
	return ch, nil
}

// Run executes the chain against one capture.
func (ch *Chain) Run(c *capture.Capture) (Result, error) {
	if len(ch.Strategies) == 0 {
		return Result{}, &FailedError{Attempts: []Attempt{{Strategy: "chain", Reason: "no strategies configured"}}}
	}
	var attempts []Attempt
	var empty *Result
	for _, s := range ch.Strategies {
		frags, err := s.Extract(c)
		if err != nil {
			log.Debug().Str("strategy", s.Name()).Err(err).Msg("strategy failed")
			attempts = append(attempts, Attempt{Strategy: s.Name(), Reason: err.Error()})
			continue
		}
		if len(frags) == 0 {
			log.Debug().Str("strategy", s.Name()).Msg("strategy returned no fragments")
			attempts = append(attempts, Attempt{Strategy: s.Name(), Reason: "no fragments"})
			if empty == nil {
				empty = &Result{Strategy: s.Name()}
			}
			continue
		}
		log.Debug().Str("strategy", s.Name()).Int("fragments", len(frags)).Msg("strategy won")
		return Result{Strategy: s.Name(), Fragments: frags}, nil
	}
	if empty != nil {
		return *empty, nil
	}
	return Result{}, &FailedError{Attempts: attempts}
}

// reindex renumbers fragments in document order. Strategies call it once
// before returning so fragment indexes are always dense and zero-based.
func reindex(frags []RawFragment) []RawFragment {
	for i := range frags {
		frags[i].Index = i
	}
	return frags
}
