package smtenc

// MinValueExpr returns the constant expression for the smallest value of t.
func MinValueExpr(t IntegerType) Expr {
	return NewConstantExpr(t.MinValue())
}

// MaxValueExpr returns the constant expression for the largest value of t.
func MaxValueExpr(t IntegerType) Expr {
	return NewConstantExpr(t.MaxValue())
}

// SetSymbolicZeroValue asserts that the variable holds its zero value.
func SetSymbolicZeroValue(v SymbolicVariable, solver Solver) {
	SetZeroValue(v.CurrentValue(), v.Type(), solver)
}

// SetZeroValue asserts that expr holds the zero value of type t. Zero is
// only defined for integers and booleans; for every other type no
// assertion is installed.
func SetZeroValue(expr Expr, t Type, solver Solver) {
	if IsInteger(t.Category()) {
		solver.AddAssertion(NewBinaryExpr(EQ, expr, NewConstantExprInt64(0)))
	} else if IsBool(t.Category()) {
		solver.AddAssertion(NewBinaryExpr(EQ, expr, NewBoolConstantExpr(false)))
	}
}

// SetSymbolicUnknownValue constrains the variable to the value range of
// its type without fixing a value.
func SetSymbolicUnknownValue(v SymbolicVariable, solver Solver) {
	SetUnknownValue(v.CurrentValue(), v.Type(), solver)
}

// SetUnknownValue asserts that expr lies within the declared range of
// type t. Only integers carry a range; the solver's native Bool and Array
// sorts have no smaller universe to bound, so every other type is left
// unconstrained.
func SetUnknownValue(expr Expr, t Type, solver Solver) {
	if !IsInteger(t.Category()) {
		return
	}
	it, ok := t.(IntegerType)
	assert(ok, "integer category on non-integer type: %T", t)
	solver.AddAssertion(NewBinaryExpr(GE, expr, MinValueExpr(it)))
	solver.AddAssertion(NewBinaryExpr(LE, expr, MaxValueExpr(it)))
}
