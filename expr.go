package smtenc

import (
	"fmt"
	"math/big"
)

// Expr represents a solver expression.
type Expr interface {
	Sort() Sort
	String() string
	expr()
}

func (*ConstantExpr) expr()     {}
func (*BoolConstantExpr) expr() {}
func (*SymbolExpr) expr()       {}
func (*NotExpr) expr()          {}
func (*BinaryExpr) expr()       {}

// BinaryOp represents a binary expression operation.
type BinaryOp int

// BinaryExpr operations.
const (
	compare_op_begin = BinaryOp(iota)
	EQ
	NEQ
	LT
	LE
	GT
	GE
	compare_op_end

	logical_op_begin
	AND
	OR
	logical_op_end
)

var binaryOps = [...]string{
	EQ:  "=",
	NEQ: "distinct",
	LT:  "<",
	LE:  "<=",
	GT:  ">",
	GE:  ">=",
	AND: "and",
	OR:  "or",
}

// String returns the string representation of the operation.
func (op BinaryOp) String() string {
	if op >= 0 && op < BinaryOp(len(binaryOps)) && binaryOps[op] != "" {
		return binaryOps[op]
	}
	return fmt.Sprintf("BinaryOp<%d>", op)
}

// IsCompare returns true if op is a comparison operator.
func (op BinaryOp) IsCompare() bool {
	return op > compare_op_begin && op < compare_op_end
}

// IsLogical returns true if op is a boolean connective.
func (op BinaryOp) IsLogical() bool {
	return op > logical_op_begin && op < logical_op_end
}

// BinaryExpr represents an operation on two expressions. Every operation
// in this algebra yields a boolean.
type BinaryExpr struct {
	Op  BinaryOp
	LHS Expr
	RHS Expr
}

// NewBinaryExpr returns a new instance of BinaryExpr.
func NewBinaryExpr(op BinaryOp, lhs, rhs Expr) Expr {
	switch op {
	case EQ, NEQ:
		assert(SortsEqual(lhs.Sort(), rhs.Sort()), "binary expr sort mismatch: op=%s %s != %s", op, lhs.Sort(), rhs.Sort())
		return newEqExpr(op, lhs, rhs)
	case LT, LE, GT, GE:
		assert(lhs.Sort() == (IntSort{}) && rhs.Sort() == (IntSort{}), "ordering requires Int operands: op=%s %s, %s", op, lhs.Sort(), rhs.Sort())
		return newCompareExpr(op, lhs, rhs)
	case AND, OR:
		assert(lhs.Sort() == (BoolSort{}) && rhs.Sort() == (BoolSort{}), "connective requires Bool operands: op=%s %s, %s", op, lhs.Sort(), rhs.Sort())
		return newLogicalExpr(op, lhs, rhs)
	default:
		panic("unreachable")
	}
}

// newEqExpr returns an expression representing the (in)equality of lhs and rhs.
func newEqExpr(op BinaryOp, lhs, rhs Expr) Expr {
	if lhs, ok := lhs.(*ConstantExpr); ok {
		if rhs, ok := rhs.(*ConstantExpr); ok {
			return NewBoolConstantExpr((lhs.Value.Cmp(rhs.Value) == 0) == (op == EQ))
		}
	}
	if lhs, ok := lhs.(*BoolConstantExpr); ok {
		if rhs, ok := rhs.(*BoolConstantExpr); ok {
			return NewBoolConstantExpr((lhs.Value == rhs.Value) == (op == EQ))
		}
	}
	return &BinaryExpr{Op: op, LHS: lhs, RHS: rhs}
}

// newCompareExpr returns an expression representing an integer ordering.
func newCompareExpr(op BinaryOp, lhs, rhs Expr) Expr {
	if lhs, ok := lhs.(*ConstantExpr); ok {
		if rhs, ok := rhs.(*ConstantExpr); ok {
			cmp := lhs.Value.Cmp(rhs.Value)
			switch op {
			case LT:
				return NewBoolConstantExpr(cmp < 0)
			case LE:
				return NewBoolConstantExpr(cmp <= 0)
			case GT:
				return NewBoolConstantExpr(cmp > 0)
			case GE:
				return NewBoolConstantExpr(cmp >= 0)
			}
		}
	}
	return &BinaryExpr{Op: op, LHS: lhs, RHS: rhs}
}

// newLogicalExpr returns an expression representing a boolean connective.
func newLogicalExpr(op BinaryOp, lhs, rhs Expr) Expr {
	// Move constant expression to left hand side.
	if _, ok := lhs.(*BoolConstantExpr); !ok {
		if _, ok := rhs.(*BoolConstantExpr); ok {
			lhs, rhs = rhs, lhs
		}
	}

	if lhs, ok := lhs.(*BoolConstantExpr); ok {
		if op == AND {
			if lhs.Value {
				return rhs
			}
			return lhs
		}
		if lhs.Value {
			return lhs
		}
		return rhs
	}
	return &BinaryExpr{Op: op, LHS: lhs, RHS: rhs}
}

// Sort returns the boolean sort.
func (e *BinaryExpr) Sort() Sort { return BoolSort{} }

// String returns the string representation of the expression.
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Op, e.LHS, e.RHS)
}

// NotExpr represents the negation of a boolean expression.
type NotExpr struct {
	X Expr
}

// NewNotExpr returns a new instance of NotExpr.
func NewNotExpr(x Expr) Expr {
	assert(x.Sort() == (BoolSort{}), "negation requires a Bool operand: %s", x.Sort())
	if x, ok := x.(*BoolConstantExpr); ok {
		return NewBoolConstantExpr(!x.Value)
	}
	return &NotExpr{X: x}
}

// Sort returns the boolean sort.
func (e *NotExpr) Sort() Sort { return BoolSort{} }

// String returns the string representation of the expression.
func (e *NotExpr) String() string {
	return fmt.Sprintf("(not %s)", e.X)
}

// ConstantExpr represents an arbitrary precision integer constant.
type ConstantExpr struct {
	Value *big.Int
}

// NewConstantExpr returns a new instance of ConstantExpr.
func NewConstantExpr(value *big.Int) *ConstantExpr {
	assert(value != nil, "constant expr requires a value")
	return &ConstantExpr{Value: value}
}

// NewConstantExprInt64 returns a constant expression for a small value.
func NewConstantExprInt64(value int64) *ConstantExpr {
	return &ConstantExpr{Value: big.NewInt(value)}
}

// Sort returns the integer sort.
func (e *ConstantExpr) Sort() Sort { return IntSort{} }

// String returns the string representation of the expression.
func (e *ConstantExpr) String() string { return e.Value.String() }

// BoolConstantExpr represents a boolean constant.
type BoolConstantExpr struct {
	Value bool
}

// NewBoolConstantExpr returns a new instance of BoolConstantExpr.
func NewBoolConstantExpr(value bool) *BoolConstantExpr {
	return &BoolConstantExpr{Value: value}
}

// Sort returns the boolean sort.
func (e *BoolConstantExpr) Sort() Sort { return BoolSort{} }

// String returns the string representation of the expression.
func (e *BoolConstantExpr) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

// SymbolExpr represents a named solver constant of a known sort.
type SymbolExpr struct {
	Name       string
	SymbolSort Sort
}

// NewSymbolExpr returns a new instance of SymbolExpr.
func NewSymbolExpr(name string, sort Sort) *SymbolExpr {
	assert(name != "", "symbol expr requires a name")
	return &SymbolExpr{Name: name, SymbolSort: sort}
}

// Sort returns the sort the symbol was declared with.
func (e *SymbolExpr) Sort() Sort { return e.SymbolSort }

// String returns the string representation of the expression.
func (e *SymbolExpr) String() string { return e.Name }
