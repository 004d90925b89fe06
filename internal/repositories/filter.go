package repositories

import "strings"

// queryFilter accumulates optional WHERE predicates with their bound
// parameters. Predicates are joined with AND; user input only ever flows
// through the args, never into the SQL text.
type queryFilter struct {
	predicates []string
	args       []any
}

// Add appends a predicate and its bound parameters
func (f *queryFilter) Add(predicate string, args ...any) {
	f.predicates = append(f.predicates, predicate)
	f.args = append(f.args, args...)
}

// Where returns the assembled WHERE clause with a leading space,
// or an empty string when no predicates were added
func (f *queryFilter) Where() string {
	if len(f.predicates) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.predicates, " AND ")
}

// Args returns the bound parameters in predicate order
func (f *queryFilter) Args() []any {
	return f.args
}
