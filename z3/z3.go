// Package z3 implements an smtenc.Solver backed by an embedded Z3 solver.
package z3

import (
	"fmt"
	"strings"
	"time"
	"unsafe"

	"github.com/smtenc/smtenc"
)

/*
#cgo LDFLAGS: -lz3
#include <z3.h>
#include <stdlib.h>
*/
import "C"

// Ensure solver implements interface.
var _ smtenc.Solver = (*Solver)(nil)

// Solver represents an assertion context backed by an embedded Z3 solver.
// It is not safe for concurrent use; each verification thread must own its
// own Solver.
type Solver struct {
	ctx    *Context
	raw    C.Z3_solver
	consts map[string]C.Z3_ast
	stats  Stats

	// First error encountered while translating assertions. Returned by
	// Check since the smtenc.Solver surface has no error results.
	err error
}

// NewSolver returns a new instance of Solver with its own Z3 context.
func NewSolver() *Solver {
	ctx := NewContext()
	raw := C.Z3_mk_solver(ctx.raw)
	C.Z3_solver_inc_ref(ctx.raw, raw)
	return &Solver{
		ctx:    ctx,
		raw:    raw,
		consts: make(map[string]C.Z3_ast),
	}
}

// Close releases the underlying Z3 solver and context.
func (s *Solver) Close() error {
	C.Z3_solver_dec_ref(s.ctx.raw, s.raw)
	return s.ctx.Close()
}

// Stats returns statistics for the solver.
func (s *Solver) Stats() Stats {
	return s.stats
}

// DeclareVariable registers a named constant of the given sort.
func (s *Solver) DeclareVariable(name string, sort smtenc.Sort) {
	if _, ok := s.consts[name]; ok {
		return
	}
	ast, err := s.ctx.makeConst(name, sort)
	if err != nil {
		s.setErr(err)
		return
	}
	s.consts[name] = ast
}

// AddAssertion appends a boolean constraint to the solver.
func (s *Solver) AddAssertion(expr smtenc.Expr) {
	ast, err := s.ctx.toAST(expr)
	if err != nil {
		s.setErr(err)
		return
	}
	C.Z3_solver_assert(s.ctx.raw, s.raw, ast)
	if err := s.ctx.err("Z3_solver_assert"); err != nil {
		s.setErr(err)
	}
}

// Check reports whether the asserted constraints are satisfiable.
// Returns the first error encountered while translating assertions.
func (s *Solver) Check() (satisfiable bool, err error) {
	if s.err != nil {
		return false, s.err
	}

	t := time.Now()
	defer func() {
		s.stats.CheckN++
		s.stats.CheckTime += time.Since(t)
	}()

	ret := C.Z3_solver_check(s.ctx.raw, s.raw)
	if err := s.ctx.err("Z3_solver_check"); err != nil {
		return false, err
	} else if ret == C.Z3_L_FALSE {
		return false, nil
	} else if ret == C.Z3_L_UNDEF {
		reason := C.GoString(C.Z3_solver_get_reason_unknown(s.ctx.raw, s.raw))
		switch {
		case strings.Contains(reason, "timeout"):
			return false, smtenc.ErrSolverTimeout
		case strings.Contains(reason, "canceled"):
			return false, smtenc.ErrSolverCanceled
		case strings.Contains(reason, "(resource limits reached)"):
			return false, smtenc.ErrSolverResourceLimit
		case strings.Contains(reason, "unknown"):
			return false, smtenc.ErrSolverUnknown
		default:
			return false, fmt.Errorf("z3: %s", reason)
		}
	}
	return true, nil
}

func (s *Solver) setErr(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Context represents a Z3 context object that is used for constructing
// sorts and expressions.
type Context struct {
	raw C.Z3_context
}

// NewContext returns a new instance of Context.
func NewContext() *Context {
	config := C.Z3_mk_config()
	defer C.Z3_del_config(config)

	raw := C.Z3_mk_context(config)
	C.Z3_set_error_handler(raw, nil)
	C.Z3_set_ast_print_mode(raw, C.Z3_PRINT_SMTLIB2_COMPLIANT)
	return &Context{raw: raw}
}

// Close deletes the underlying Z3 context.
func (ctx *Context) Close() error {
	C.Z3_del_context(ctx.raw)
	return ctx.err("Z3_del_context")
}

// err returns the error for the last API call. Returns nil if last call was successful.
func (ctx *Context) err(op string) error {
	if code := C.Z3_get_error_code(ctx.raw); code != C.Z3_OK {
		return &Error{Code: int(code), Op: op, Message: C.GoString(C.Z3_get_error_msg(ctx.raw, code))}
	}
	return nil
}

// toSort returns the Z3 sort for an smtenc sort. Function sorts map to the
// integer sort, matching the integer abstraction used for function values.
func (ctx *Context) toSort(sort smtenc.Sort) (C.Z3_sort, error) {
	switch sort := sort.(type) {
	case smtenc.IntSort:
		return C.Z3_mk_int_sort(ctx.raw), ctx.err("Z3_mk_int_sort")
	case smtenc.BoolSort:
		return C.Z3_mk_bool_sort(ctx.raw), ctx.err("Z3_mk_bool_sort")
	case smtenc.ArraySort:
		domainSort, err := ctx.toSort(sort.Key)
		if err != nil {
			return nil, err
		}
		rangeSort, err := ctx.toSort(sort.Value)
		if err != nil {
			return nil, err
		}
		return C.Z3_mk_array_sort(ctx.raw, domainSort, rangeSort), ctx.err("Z3_mk_array_sort")
	case smtenc.FunctionSort:
		return C.Z3_mk_int_sort(ctx.raw), ctx.err("Z3_mk_int_sort")
	default:
		return nil, fmt.Errorf("z3.Context.toSort: invalid sort type: %T", sort)
	}
}

// makeConst returns a named Z3 constant of the given sort.
func (ctx *Context) makeConst(name string, sort smtenc.Sort) (C.Z3_ast, error) {
	z3Sort, err := ctx.toSort(sort)
	if err != nil {
		return nil, err
	}

	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	nameSymbol := C.Z3_mk_string_symbol(ctx.raw, cname)

	return C.Z3_mk_const(ctx.raw, nameSymbol, z3Sort), ctx.err("Z3_mk_const")
}

// toAST returns a new instance of Z3_ast from an smtenc expression.
func (ctx *Context) toAST(expr smtenc.Expr) (C.Z3_ast, error) {
	switch expr := expr.(type) {
	case *smtenc.ConstantExpr:
		return ctx.toConstantAST(expr)
	case *smtenc.BoolConstantExpr:
		if expr.Value {
			return C.Z3_mk_true(ctx.raw), ctx.err("Z3_mk_true")
		}
		return C.Z3_mk_false(ctx.raw), ctx.err("Z3_mk_false")
	case *smtenc.SymbolExpr:
		return ctx.makeConst(expr.Name, expr.SymbolSort)
	case *smtenc.NotExpr:
		return ctx.toNotAST(expr)
	case *smtenc.BinaryExpr:
		return ctx.toBinaryAST(expr)
	default:
		return nil, fmt.Errorf("z3.Context.toAST: invalid expression type: %T", expr)
	}
}

func (ctx *Context) toConstantAST(expr *smtenc.ConstantExpr) (C.Z3_ast, error) {
	intSort := C.Z3_mk_int_sort(ctx.raw)
	if err := ctx.err("Z3_mk_int_sort"); err != nil {
		return nil, err
	}

	cvalue := C.CString(expr.Value.String())
	defer C.free(unsafe.Pointer(cvalue))
	return C.Z3_mk_numeral(ctx.raw, cvalue, intSort), ctx.err("Z3_mk_numeral")
}

func (ctx *Context) toNotAST(expr *smtenc.NotExpr) (C.Z3_ast, error) {
	x, err := ctx.toAST(expr.X)
	if err != nil {
		return nil, err
	}
	return C.Z3_mk_not(ctx.raw, x), ctx.err("Z3_mk_not")
}

func (ctx *Context) toBinaryAST(expr *smtenc.BinaryExpr) (C.Z3_ast, error) {
	lhs, err := ctx.toAST(expr.LHS)
	if err != nil {
		return nil, err
	}
	rhs, err := ctx.toAST(expr.RHS)
	if err != nil {
		return nil, err
	}

	args := [2]C.Z3_ast{lhs, rhs}
	switch expr.Op {
	case smtenc.EQ:
		return C.Z3_mk_eq(ctx.raw, lhs, rhs), ctx.err("Z3_mk_eq")
	case smtenc.NEQ:
		return C.Z3_mk_distinct(ctx.raw, 2, &args[0]), ctx.err("Z3_mk_distinct")
	case smtenc.LT:
		return C.Z3_mk_lt(ctx.raw, lhs, rhs), ctx.err("Z3_mk_lt")
	case smtenc.LE:
		return C.Z3_mk_le(ctx.raw, lhs, rhs), ctx.err("Z3_mk_le")
	case smtenc.GT:
		return C.Z3_mk_gt(ctx.raw, lhs, rhs), ctx.err("Z3_mk_gt")
	case smtenc.GE:
		return C.Z3_mk_ge(ctx.raw, lhs, rhs), ctx.err("Z3_mk_ge")
	case smtenc.AND:
		return C.Z3_mk_and(ctx.raw, 2, &args[0]), ctx.err("Z3_mk_and")
	case smtenc.OR:
		return C.Z3_mk_or(ctx.raw, 2, &args[0]), ctx.err("Z3_mk_or")
	default:
		return nil, fmt.Errorf("z3.Context.toBinaryAST: unexpected operation: %s", expr.Op)
	}
}

// Error represents an error from the Z3 API.
type Error struct {
	Code    int
	Op      string
	Message string
}

// Error returns the error as a string.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%d)", e.Op, e.Message, e.Code)
}

// Stats tracks solver usage.
type Stats struct {
	CheckN    int
	CheckTime time.Duration
}
