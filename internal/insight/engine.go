package insight

import (
	"fmt"
	"sync"
)

// MaxInsights bounds both the insight and recommendation lists of one
// evaluation pass.
const MaxInsights = 8

// Engine owns an ordered rule registry and evaluates it against analysis
// contexts. Registry mutation (Add/Remove/Toggle) is guarded by a single
// write lock; evaluation takes a consistent snapshot under the read lock,
// so one writer at a time is the required discipline for callers that
// mutate while evaluating. Independent analyses should own independent
// engines.
type Engine struct {
	mu    sync.RWMutex
	rules []Rule

	// logf receives per-rule failure diagnostics. Defaults to a no-op so
	// the engine stays silent in library use.
	logf func(format string, args ...any)
}

// NewEngine creates an engine pre-populated with the default rule set.
func NewEngine() *Engine {
	e := &Engine{logf: func(string, ...any) {}}
	for _, r := range DefaultRules() {
		// Default rules are well-formed; Add cannot fail here.
		_ = e.Add(r)
	}
	return e
}

// SetLogger routes rule-failure diagnostics to the given function.
func (e *Engine) SetLogger(logf func(format string, args ...any)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if logf != nil {
		e.logf = logf
	}
}

// Add registers a rule. It fails on an empty id, a missing predicate or
// renderer, or a duplicate id.
func (e *Engine) Add(r Rule) error {
	if r.ID == "" {
		return fmt.Errorf("rule id must not be empty")
	}
	if r.When == nil || r.Render == nil {
		return fmt.Errorf("rule %q needs both a predicate and a renderer", r.ID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, existing := range e.rules {
		if existing.ID == r.ID {
			return fmt.Errorf("rule %q already registered", r.ID)
		}
	}
	e.rules = append(e.rules, r)
	return nil
}

// Remove deletes a rule by id, reporting whether it was present.
func (e *Engine) Remove(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, r := range e.rules {
		if r.ID == id {
			e.rules = append(e.rules[:i], e.rules[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle enables or disables a rule by id, reporting whether it was found.
func (e *Engine) Toggle(id string, enabled bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.rules {
		if e.rules[i].ID == id {
			e.rules[i].Enabled = enabled
			return true
		}
	}
	return false
}

// Rules returns a copy of the registry in evaluation order.
func (e *Engine) Rules() []Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Generate evaluates all enabled rules against the context. A rule whose
// predicate or renderer panics is logged and skipped; it never aborts the
// remaining rules. Output is truncated to MaxInsights entries per list.
func (e *Engine) Generate(ctx *Context) SmartInsights {
	rules := e.Rules()

	result := SmartInsights{PrimaryCategory: CategoryProductivity}
	triggered := make(map[string]bool)

	for _, r := range rules {
		if !r.Enabled {
			continue
		}

		text, rec, fired := e.evaluate(r, ctx)
		if !fired {
			continue
		}

		if len(result.Insights) < MaxInsights && text != "" {
			result.Insights = append(result.Insights, text)
		}
		if len(result.Recommendations) < MaxInsights && rec != "" {
			result.Recommendations = append(result.Recommendations, rec)
		}

		triggered[r.Category] = true
		if priorityRank(r.Priority) > priorityRank(result.Priority) {
			result.Priority = r.Priority
		}
	}

	for _, cat := range CategoryPrecedence {
		if triggered[cat] {
			result.PrimaryCategory = cat
			break
		}
	}

	return result
}

// evaluate runs one rule with panic isolation.
func (e *Engine) evaluate(r Rule, ctx *Context) (text, rec string, fired bool) {
	defer func() {
		if p := recover(); p != nil {
			e.logf("insight rule %s failed: %v", r.ID, p)
			text, rec, fired = "", "", false
		}
	}()

	if !r.When(ctx) {
		return "", "", false
	}

	text = r.Render(ctx)
	if r.Recommend != nil {
		rec = r.Recommend(ctx)
	}
	return text, rec, true
}
