package models

import (
	"fmt"
	"math"
)

// ResultClass is one of the six 1X2 / double-chance outcome codes.
type ResultClass int

const (
	HomeWin ResultClass = iota
	Draw
	AwayWin
	HomeOrDraw
	HomeOrAway
	DrawOrAway
)

// Matches reports whether the score falls inside the result class.
func (r ResultClass) Matches(s Score) bool {
	switch r {
	case HomeWin:
		return s.Home > s.Away
	case Draw:
		return s.Home == s.Away
	case AwayWin:
		return s.Home < s.Away
	case HomeOrDraw:
		return s.Home >= s.Away
	case HomeOrAway:
		return s.Home != s.Away
	case DrawOrAway:
		return s.Home <= s.Away
	}
	return false
}

// String returns the conventional betting code for the result class.
func (r ResultClass) String() string {
	switch r {
	case HomeWin:
		return "1"
	case Draw:
		return "X"
	case AwayWin:
		return "2"
	case HomeOrDraw:
		return "1X"
	case HomeOrAway:
		return "12"
	case DrawOrAway:
		return "X2"
	}
	return "?"
}

// ParseResultClass converts a betting code ("1", "X", "2", "1X", "12", "X2")
// into its ResultClass. Used at the wire boundary only; internal code matches
// on the enum directly.
func ParseResultClass(code string) (ResultClass, error) {
	switch code {
	case "1":
		return HomeWin, nil
	case "X", "x":
		return Draw, nil
	case "2":
		return AwayWin, nil
	case "1X", "1x":
		return HomeOrDraw, nil
	case "12":
		return HomeOrAway, nil
	case "X2", "x2":
		return DrawOrAway, nil
	}
	return 0, fmt.Errorf("unknown result code %q", code)
}

// TotalComparison selects how a goal total is compared against a line.
type TotalComparison int

const (
	TotalOver TotalComparison = iota
	TotalUnder
	TotalExactly
)

// TotalCondition compares a goal total against a line.
type TotalCondition struct {
	Cmp  TotalComparison
	Line float64
}

// Matches reports whether the goal count satisfies the comparison.
func (t TotalCondition) Matches(goals int) bool {
	g := float64(goals)
	switch t.Cmp {
	case TotalOver:
		return g > t.Line
	case TotalUnder:
		return g < t.Line
	case TotalExactly:
		return math.Abs(g-t.Line) < 1e-9
	}
	return false
}

// ScopeCondition is the optional-field predicate for one scope of the match.
// Nil fields are unconstrained and never reject a score.
type ScopeCondition struct {
	Result     *ResultClass
	Total      *TotalCondition
	BothScored *bool
	Exact      *Score
}

// Empty reports whether no field is populated.
func (c ScopeCondition) Empty() bool {
	return c.Result == nil && c.Total == nil && c.BothScored == nil && c.Exact == nil
}

// Matches evaluates every populated field against the score.
func (c ScopeCondition) Matches(s Score) bool {
	if c.Result != nil && !c.Result.Matches(s) {
		return false
	}
	if c.Total != nil && !c.Total.Matches(s.Total()) {
		return false
	}
	if c.BothScored != nil && *c.BothScored != s.BothScored() {
		return false
	}
	if c.Exact != nil && *c.Exact != s {
		return false
	}
	return true
}

// Scope identifies which portion of the match a predicate applies to.
type Scope int

const (
	ScopeFirstHalf Scope = iota
	ScopeSecondHalf
	ScopeFullTime
)

// MarketCondition is a pure-value predicate over a hypothetical match outcome,
// spanning the first half, second half and full-time scores. Conditions are
// never mutated after construction; they are only composed with And.
type MarketCondition struct {
	FirstHalf  ScopeCondition
	SecondHalf ScopeCondition
	FullTime   ScopeCondition

	// impossible is set when an And composition produced contradictory
	// constraints; such a condition matches nothing.
	impossible bool
}

// Impossible reports whether the condition can never match any outcome.
func (m MarketCondition) Impossible() bool {
	return m.impossible
}

// Matches evaluates the condition against the two period scores and the
// full-time score, in that order, rejecting on the first failing field.
func (m MarketCondition) Matches(first, second, full Score) bool {
	if m.impossible {
		return false
	}
	if !m.FirstHalf.Matches(first) {
		return false
	}
	if !m.SecondHalf.Matches(second) {
		return false
	}
	return m.FullTime.Matches(full)
}

// And combines two conditions by conjoining every populated field. When both
// conditions populate the same field with different values the combination is
// unsatisfiable and the returned condition matches nothing.
func (m MarketCondition) And(other MarketCondition) MarketCondition {
	out := MarketCondition{impossible: m.impossible || other.impossible}
	var ok1, ok2, ok3 bool
	out.FirstHalf, ok1 = mergeScope(m.FirstHalf, other.FirstHalf)
	out.SecondHalf, ok2 = mergeScope(m.SecondHalf, other.SecondHalf)
	out.FullTime, ok3 = mergeScope(m.FullTime, other.FullTime)
	if !ok1 || !ok2 || !ok3 {
		out.impossible = true
	}
	return out
}

func mergeScope(a, b ScopeCondition) (ScopeCondition, bool) {
	var out ScopeCondition
	ok := true
	var fieldOK bool
	if out.Result, fieldOK = mergeField(a.Result, b.Result); !fieldOK {
		ok = false
	}
	if out.Total, fieldOK = mergeField(a.Total, b.Total); !fieldOK {
		ok = false
	}
	if out.BothScored, fieldOK = mergeField(a.BothScored, b.BothScored); !fieldOK {
		ok = false
	}
	if out.Exact, fieldOK = mergeField(a.Exact, b.Exact); !fieldOK {
		ok = false
	}
	return out, ok
}

func mergeField[T comparable](a, b *T) (*T, bool) {
	if a == nil {
		return b, true
	}
	if b == nil {
		return a, true
	}
	if *a == *b {
		return a, true
	}
	return a, false
}

// ResultCondition builds a condition constraining one scope to a result class.
func ResultCondition(scope Scope, class ResultClass) MarketCondition {
	var m MarketCondition
	m.scopeRef(scope).Result = &class
	return m
}

// TotalsCondition builds a condition comparing one scope's goal total to a line.
func TotalsCondition(scope Scope, cmp TotalComparison, line float64) MarketCondition {
	var m MarketCondition
	m.scopeRef(scope).Total = &TotalCondition{Cmp: cmp, Line: line}
	return m
}

// BothScoredCondition builds a condition on whether both sides scored in a scope.
func BothScoredCondition(scope Scope, both bool) MarketCondition {
	var m MarketCondition
	m.scopeRef(scope).BothScored = &both
	return m
}

// ExactScoreCondition builds a condition requiring an exact score in a scope.
func ExactScoreCondition(scope Scope, s Score) MarketCondition {
	var m MarketCondition
	m.scopeRef(scope).Exact = &s
	return m
}

func (m *MarketCondition) scopeRef(s Scope) *ScopeCondition {
	switch s {
	case ScopeFirstHalf:
		return &m.FirstHalf
	case ScopeSecondHalf:
		return &m.SecondHalf
	default:
		return &m.FullTime
	}
}
