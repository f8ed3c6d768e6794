package smtenc

import (
	"fmt"
	"strings"
)

// Kind identifies a solver sort.
type Kind int

// Solver sort kinds.
const (
	KindInt = Kind(iota)
	KindBool
	KindFunction
	KindArray
)

var kinds = [...]string{
	KindInt:      "Int",
	KindBool:     "Bool",
	KindFunction: "Function",
	KindArray:    "Array",
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	if k >= 0 && k < Kind(len(kinds)) && kinds[k] != "" {
		return kinds[k]
	}
	return fmt.Sprintf("Kind<%d>", k)
}

// Sort represents a solver-facing type descriptor. Sorts are immutable
// value objects and may be shared freely.
type Sort interface {
	Kind() Kind
	String() string
	sort()
}

func (IntSort) sort()      {}
func (BoolSort) sort()     {}
func (FunctionSort) sort() {}
func (ArraySort) sort()    {}

// IntSort is the unbounded integer sort.
type IntSort struct{}

// Kind returns KindInt.
func (IntSort) Kind() Kind { return KindInt }

// String returns the string representation of the sort.
func (IntSort) String() string { return "Int" }

// BoolSort is the boolean sort.
type BoolSort struct{}

// Kind returns KindBool.
func (BoolSort) Kind() Kind { return KindBool }

// String returns the string representation of the sort.
func (BoolSort) String() string { return "Bool" }

// FunctionSort describes an uninterpreted function signature.
type FunctionSort struct {
	Params []Sort
	Return Sort
}

// Kind returns KindFunction.
func (FunctionSort) Kind() Kind { return KindFunction }

// String returns the string representation of the sort.
func (s FunctionSort) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range s.Params {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(") -> ")
	sb.WriteString(s.Return.String())
	return sb.String()
}

// ArraySort describes a total map from a key sort to a value sort.
type ArraySort struct {
	Key   Sort
	Value Sort
}

// Kind returns KindArray.
func (ArraySort) Kind() Kind { return KindArray }

// String returns the string representation of the sort.
func (s ArraySort) String() string {
	return fmt.Sprintf("(Array %s %s)", s.Key, s.Value)
}

// SortsEqual returns true if a and b are structurally identical.
// FunctionSort carries a slice, so interface equality cannot be used.
func SortsEqual(a, b Sort) bool {
	switch a := a.(type) {
	case IntSort:
		_, ok := b.(IntSort)
		return ok
	case BoolSort:
		_, ok := b.(BoolSort)
		return ok
	case FunctionSort:
		b, ok := b.(FunctionSort)
		if !ok || len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !SortsEqual(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return SortsEqual(a.Return, b.Return)
	case ArraySort:
		b, ok := b.(ArraySort)
		return ok && SortsEqual(a.Key, b.Key) && SortsEqual(a.Value, b.Value)
	default:
		panic("unreachable")
	}
}

// KindOf returns the solver sort kind used to encode a type category.
// Unsupported categories fall back to KindInt, the sort of abstracted
// values.
func KindOf(c Category) Kind {
	if IsNumber(c) {
		return KindInt
	} else if IsBool(c) {
		return KindBool
	} else if IsMapping(c) {
		return KindArray
	} else if IsFunction(c) {
		return KindFunction
	}
	// Abstract type.
	return KindInt
}

// maxSortDepth bounds recursion through mapping and function types.
// The type checker never produces self-referential type graphs, but a
// broken one must fail loudly instead of overflowing the stack.
const maxSortDepth = 256

// SortOf returns the solver sort encoding a type.
func SortOf(t Type) Sort {
	return sortOf(t, 0)
}

// SortsOf returns the solver sorts encoding each type, preserving order.
func SortsOf(types []Type) []Sort {
	sorts := make([]Sort, 0, len(types))
	for _, t := range types {
		sorts = append(sorts, SortOf(t))
	}
	return sorts
}

func sortOf(t Type, depth int) Sort {
	assert(depth <= maxSortDepth, "sort translation exceeds depth %d: %s", maxSortDepth, t)

	switch KindOf(t.Category()) {
	case KindInt:
		return IntSort{}
	case KindBool:
		return BoolSort{}
	case KindFunction:
		fn, ok := t.(FunctionType)
		assert(ok, "function category on non-function type: %T", t)

		params := make([]Sort, 0, len(fn.Params))
		for _, p := range fn.Params {
			params = append(params, sortOf(p, depth+1))
		}

		// TODO: support multiple return values once tuples are encoded.
		assert(len(fn.Returns) == 1, "function sort requires exactly one return type, got %d", len(fn.Returns))
		return FunctionSort{Params: params, Return: sortOf(fn.Returns[0], depth+1)}
	case KindArray:
		m, ok := t.(MappingType)
		assert(ok, "array kind on non-mapping type: %T", t)
		return ArraySort{Key: sortOf(m.Key, depth+1), Value: sortOf(m.Value, depth+1)}
	default:
		panic("unreachable")
	}
}
