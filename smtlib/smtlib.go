// Package smtlib renders solver declarations and assertions as SMT-LIB 2
// text for use with external solver processes.
package smtlib

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/smtenc/smtenc"
)

// Ensure printer implements interface.
var _ smtenc.Solver = (*Printer)(nil)

// Printer is an smtenc.Solver that accumulates an SMT-LIB 2 script.
// Declarations and assertions appear in the order they were added.
type Printer struct {
	sb       strings.Builder
	declared map[string]smtenc.Sort
}

// NewPrinter returns a new instance of Printer.
func NewPrinter() *Printer {
	return &Printer{declared: make(map[string]smtenc.Sort)}
}

// DeclareVariable emits a declare-const line for name. Re-declaring a name
// with the same sort is a no-op; a different sort panics.
func (p *Printer) DeclareVariable(name string, sort smtenc.Sort) {
	if prev, ok := p.declared[name]; ok {
		if !smtenc.SortsEqual(prev, sort) {
			panic(fmt.Sprintf("smtlib: redeclaration of %q at a different sort: %s != %s", name, prev, sort))
		}
		return
	}
	p.declared[name] = sort
	fmt.Fprintf(&p.sb, "(declare-const %s %s)\n", name, sortString(sort))
}

// AddAssertion emits an assert line for expr.
func (p *Printer) AddAssertion(expr smtenc.Expr) {
	p.sb.WriteString("(assert ")
	writeExpr(&p.sb, expr)
	p.sb.WriteString(")\n")
}

// String returns the script accumulated so far.
func (p *Printer) String() string {
	return p.sb.String()
}

// Script returns the accumulated script terminated by a check-sat command.
func (p *Printer) Script() string {
	return p.sb.String() + "(check-sat)\n"
}

// sortString renders a sort in SMT-LIB 2 syntax. Function sorts render as
// Int, matching the integer abstraction used for function values.
func sortString(s smtenc.Sort) string {
	switch s := s.(type) {
	case smtenc.IntSort:
		return "Int"
	case smtenc.BoolSort:
		return "Bool"
	case smtenc.ArraySort:
		return fmt.Sprintf("(Array %s %s)", sortString(s.Key), sortString(s.Value))
	case smtenc.FunctionSort:
		return "Int"
	default:
		panic(fmt.Sprintf("smtlib: invalid sort type: %T", s))
	}
}

func writeExpr(sb *strings.Builder, expr smtenc.Expr) {
	switch expr := expr.(type) {
	case *smtenc.ConstantExpr:
		// SMT-LIB has no negative numerals.
		if expr.Value.Sign() < 0 {
			fmt.Fprintf(sb, "(- %s)", new(big.Int).Neg(expr.Value))
			return
		}
		sb.WriteString(expr.Value.String())
	case *smtenc.BoolConstantExpr:
		sb.WriteString(expr.String())
	case *smtenc.SymbolExpr:
		sb.WriteString(expr.Name)
	case *smtenc.NotExpr:
		sb.WriteString("(not ")
		writeExpr(sb, expr.X)
		sb.WriteString(")")
	case *smtenc.BinaryExpr:
		sb.WriteString("(")
		sb.WriteString(expr.Op.String())
		sb.WriteString(" ")
		writeExpr(sb, expr.LHS)
		sb.WriteString(" ")
		writeExpr(sb, expr.RHS)
		sb.WriteString(")")
	default:
		panic(fmt.Sprintf("smtlib: invalid expression type: %T", expr))
	}
}
