package smtenc

import (
	"github.com/benbjohnson/immutable"
)

// Solver represents the assertion surface of an SMT solver context. The
// context is owned by the surrounding verification engine and passed by
// reference for the duration of a call; implementations append, they never
// remove or replace assertions.
type Solver interface {
	// DeclareVariable registers a named constant of the given sort.
	// Re-declaring a name with the same sort is a no-op; re-declaring it
	// with a different sort is a contract violation.
	DeclareVariable(name string, sort Sort)

	// AddAssertion appends a boolean constraint to the context.
	AddAssertion(expr Expr)
}

// Declaration is a name/sort pair registered with a solver.
type Declaration struct {
	Name string
	Sort Sort
}

// Ensure recorder implements interface.
var _ Solver = (*Recorder)(nil)

// Recorder is an in-memory Solver that records declarations and assertions
// without deciding anything. It backs tests and diagnostic dumps of the
// constraint set handed to a real backend.
type Recorder struct {
	symbols    *immutable.SortedMap // variable name -> Sort
	assertions []Expr
}

// NewRecorder returns a new instance of Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		symbols: immutable.NewSortedMap(&stringComparer{}),
	}
}

// DeclareVariable registers a named constant of the given sort.
func (r *Recorder) DeclareVariable(name string, sort Sort) {
	assert(name != "", "declaration requires a name")
	if prev, ok := r.symbols.Get(name); ok {
		assert(SortsEqual(prev.(Sort), sort), "redeclaration of %q at a different sort: %s != %s", name, prev, sort)
		return
	}
	r.symbols = r.symbols.Set(name, sort)
}

// AddAssertion appends a boolean constraint to the record.
func (r *Recorder) AddAssertion(expr Expr) {
	assert(expr.Sort() == (BoolSort{}), "assertion must be Bool-sorted: %s", expr.Sort())
	r.assertions = append(r.assertions, expr)
}

// Assertions returns the recorded assertions in insertion order.
func (r *Recorder) Assertions() []Expr {
	return r.assertions
}

// DeclaredSort returns the sort a name was declared with.
func (r *Recorder) DeclaredSort(name string) (Sort, bool) {
	sort, ok := r.symbols.Get(name)
	if !ok {
		return nil, false
	}
	return sort.(Sort), true
}

// Declarations returns all declarations ordered by name.
func (r *Recorder) Declarations() []Declaration {
	a := make([]Declaration, 0, r.symbols.Len())
	for itr := r.symbols.Iterator(); !itr.Done(); {
		k, v := itr.Next()
		a = append(a, Declaration{Name: k.(string), Sort: v.(Sort)})
	}
	return a
}

// stringComparer compares two strings. Implements immutable.Comparer.
type stringComparer struct{}

// Compare returns -1 if a is less than b, returns 1 if a is greater than b,
// and returns 0 if a is equal to b. Panic if a or b is not a string.
func (c *stringComparer) Compare(a, b interface{}) int {
	if i, j := a.(string), b.(string); i < j {
		return -1
	} else if i > j {
		return 1
	}
	return 0
}
