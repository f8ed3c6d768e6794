package smtenc

// SymbolicVariable represents a named, solver-bound stand-in for one
// program value. A variable is created once per unique name and is never
// re-shaped to a different sort; the verification engine replaces it with
// a fresh variable when the underlying value changes.
type SymbolicVariable interface {
	Name() string
	Type() Type
	CurrentValue() Expr
	SetCurrentValue(expr Expr)
	variable()
}

func (*IntVariable) variable()        {}
func (*BoolVariable) variable()       {}
func (*FixedBytesVariable) variable() {}
func (*AddressVariable) variable()    {}
func (*MappingVariable) variable()    {}

// symbolicVariable carries the state shared by all variable variants.
type symbolicVariable struct {
	name  string
	typ   Type
	value Expr
}

// newSymbolicVariable declares name with the solver and seeds the current
// value to a symbol of the type's sort.
func newSymbolicVariable(typ Type, name string, solver Solver) symbolicVariable {
	assert(name != "", "symbolic variable requires a unique name")
	sort := SortOf(typ)
	solver.DeclareVariable(name, sort)
	return symbolicVariable{
		name:  name,
		typ:   typ,
		value: NewSymbolExpr(name, sort),
	}
}

// Name returns the unique name the variable was declared with.
func (v *symbolicVariable) Name() string { return v.name }

// Type returns the type the variable represents.
func (v *symbolicVariable) Type() Type { return v.typ }

// CurrentValue returns the expression holding the variable's value.
func (v *symbolicVariable) CurrentValue() Expr { return v.value }

// SetCurrentValue replaces the value expression. The new expression must
// keep the variable's declared sort.
func (v *symbolicVariable) SetCurrentValue(expr Expr) {
	assert(SortsEqual(expr.Sort(), SortOf(v.typ)), "value sort mismatch for %q: %s != %s", v.name, expr.Sort(), SortOf(v.typ))
	v.value = expr
}

// IntVariable represents an integer-typed value with a known width and
// signedness. Abstracted values are also carried by this variant, typed as
// a signed 256-bit integer.
type IntVariable struct {
	symbolicVariable
}

// NewIntVariable returns a new instance of IntVariable.
func NewIntVariable(typ IntegerType, name string, solver Solver) *IntVariable {
	return &IntVariable{newSymbolicVariable(typ, name, solver)}
}

// IntegerType returns the integer type of the variable.
func (v *IntVariable) IntegerType() IntegerType { return v.typ.(IntegerType) }

// BoolVariable represents a boolean value.
type BoolVariable struct {
	symbolicVariable
}

// NewBoolVariable returns a new instance of BoolVariable.
func NewBoolVariable(name string, solver Solver) *BoolVariable {
	return &BoolVariable{newSymbolicVariable(BoolType{}, name, solver)}
}

// FixedBytesVariable represents a fixed-size byte string, encoded as an
// unsigned integer of eight bits per byte.
type FixedBytesVariable struct {
	symbolicVariable
	numBytes uint
}

// NewFixedBytesVariable returns a new instance of FixedBytesVariable.
func NewFixedBytesVariable(numBytes uint, name string, solver Solver) *FixedBytesVariable {
	return &FixedBytesVariable{
		symbolicVariable: newSymbolicVariable(NewUnsignedIntegerType(8*numBytes), name, solver),
		numBytes:         numBytes,
	}
}

// NumBytes returns the byte width of the original type.
func (v *FixedBytesVariable) NumBytes() uint { return v.numBytes }

// AddressVariable represents an account address, encoded as an unsigned
// 160-bit integer.
type AddressVariable struct {
	symbolicVariable
}

// NewAddressVariable returns a new instance of AddressVariable.
func NewAddressVariable(name string, solver Solver) *AddressVariable {
	return &AddressVariable{newSymbolicVariable(NewUnsignedIntegerType(WidthAddress), name, solver)}
}

// MappingVariable represents a key/value mapping, encoded as a solver
// array from the key sort to the value sort.
type MappingVariable struct {
	symbolicVariable
}

// NewMappingVariable returns a new instance of MappingVariable.
func NewMappingVariable(typ MappingType, name string, solver Solver) *MappingVariable {
	return &MappingVariable{newSymbolicVariable(typ, name, solver)}
}

// MappingType returns the mapping type of the variable.
func (v *MappingVariable) MappingType() MappingType { return v.typ.(MappingType) }

// KeyType returns the normalized key type of the mapping.
func (v *MappingVariable) KeyType() Type { return NormalizeType(v.MappingType().Key) }

// ValueType returns the normalized value type of the mapping.
func (v *MappingVariable) ValueType() Type { return NormalizeType(v.MappingType().Value) }

// NewSymbolicVariable creates the symbolic variable modeling a value of
// type t, declared with the solver under the given unique name. Types the
// solver cannot model precisely are represented by an unconstrained signed
// 256-bit integer; abstracted reports when that imprecise representation
// was chosen, including for function-typed values, which are only modeled
// structurally at the sort level.
//
// The branch order matters: an unsupported-after-normalization type must
// be caught before any category-specific branch runs.
func NewSymbolicVariable(t Type, name string, solver Solver) (abstracted bool, v SymbolicVariable) {
	switch {
	case !IsSupportedType(NormalizeType(t)):
		return true, NewIntVariable(NewIntegerType(WidthWord), name, solver)
	case IsBool(t.Category()):
		return false, NewBoolVariable(name, solver)
	case IsFunction(t.Category()):
		return true, NewIntVariable(NewIntegerType(WidthWord), name, solver)
	case IsInteger(t.Category()):
		return false, NewIntVariable(NormalizeType(t).(IntegerType), name, solver)
	case IsFixedBytes(t.Category()):
		return false, NewFixedBytesVariable(t.(FixedBytesType).NumBytes, name, solver)
	case IsAddress(t.Category()):
		return false, NewAddressVariable(name, solver)
	case IsRational(t.Category()):
		if t.(RationalNumberType).IsFractional() {
			return false, NewIntVariable(NewIntegerType(WidthWord), name, solver)
		}
		return false, NewIntVariable(NormalizeType(t).(IntegerType), name, solver)
	case IsMapping(t.Category()):
		return false, NewMappingVariable(t.(MappingType), name, solver)
	default:
		assert(false, "unhandled supported category: %s", t.Category())
		panic("unreachable")
	}
}
