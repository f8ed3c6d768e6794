package smtenc

import (
	"fmt"
	"math/big"
	"strings"
)

// Category identifies the shape of a source-language type.
type Category int

// Type categories. The list is closed: a new category in the source
// language requires an explicit entry here and a classification decision
// in the predicates below.
const (
	CategoryInteger = Category(iota)
	CategoryRationalNumber
	CategoryFixedBytes
	CategoryAddress
	CategoryBool
	CategoryMapping
	CategoryFunction
	CategoryArray
	CategoryStruct
	CategoryString
	CategoryContract
	CategoryEnum
	CategoryTuple
)

var categories = [...]string{
	CategoryInteger:        "integer",
	CategoryRationalNumber: "rational",
	CategoryFixedBytes:     "fixedbytes",
	CategoryAddress:        "address",
	CategoryBool:           "bool",
	CategoryMapping:        "mapping",
	CategoryFunction:       "function",
	CategoryArray:          "array",
	CategoryStruct:         "struct",
	CategoryString:         "string",
	CategoryContract:       "contract",
	CategoryEnum:           "enum",
	CategoryTuple:          "tuple",
}

// String returns the string representation of the category.
func (c Category) String() string {
	if c >= 0 && c < Category(len(categories)) && categories[c] != "" {
		return categories[c]
	}
	return fmt.Sprintf("Category<%d>", c)
}

// IsInteger returns true if c is the integer category.
func IsInteger(c Category) bool { return c == CategoryInteger }

// IsRational returns true if c is the rational number category.
func IsRational(c Category) bool { return c == CategoryRationalNumber }

// IsFixedBytes returns true if c is the fixed-size byte string category.
func IsFixedBytes(c Category) bool { return c == CategoryFixedBytes }

// IsAddress returns true if c is the address category.
func IsAddress(c Category) bool { return c == CategoryAddress }

// IsBool returns true if c is the boolean category.
func IsBool(c Category) bool { return c == CategoryBool }

// IsMapping returns true if c is the mapping category.
func IsMapping(c Category) bool { return c == CategoryMapping }

// IsFunction returns true if c is the function category.
func IsFunction(c Category) bool { return c == CategoryFunction }

// IsNumber returns true if c is encoded as an integer of some width.
func IsNumber(c Category) bool {
	return IsInteger(c) || IsRational(c) || IsFixedBytes(c) || IsAddress(c)
}

// IsSupportedCategory returns true if the category can be modeled precisely
// by the solver. Everything else is abstracted.
func IsSupportedCategory(c Category) bool {
	return IsNumber(c) || IsBool(c) || IsFunction(c) || IsMapping(c)
}

// IsSupportedType returns true if t can be modeled precisely by the solver.
func IsSupportedType(t Type) bool {
	return IsSupportedCategory(t.Category())
}

// Type represents a source-language type as produced by the type checker.
// Types are immutable value objects; this package never validates them
// beyond what encoding requires.
type Type interface {
	Category() Category
	String() string
	typ()
}

func (IntegerType) typ()        {}
func (RationalNumberType) typ() {}
func (FixedBytesType) typ()     {}
func (AddressType) typ()        {}
func (BoolType) typ()           {}
func (MappingType) typ()        {}
func (FunctionType) typ()       {}
func (ArrayType) typ()          {}
func (StructType) typ()         {}
func (StringType) typ()         {}
func (ContractType) typ()       {}
func (EnumType) typ()           {}
func (TupleType) typ()          {}

// IntegerType represents a fixed-width signed or unsigned integer.
type IntegerType struct {
	Bits   uint
	Signed bool
}

// NewIntegerType returns a signed integer type of the given width.
func NewIntegerType(bits uint) IntegerType {
	return IntegerType{Bits: bits, Signed: true}
}

// NewUnsignedIntegerType returns an unsigned integer type of the given width.
func NewUnsignedIntegerType(bits uint) IntegerType {
	return IntegerType{Bits: bits, Signed: false}
}

// Category returns CategoryInteger.
func (t IntegerType) Category() Category { return CategoryInteger }

// String returns the string representation of the type.
func (t IntegerType) String() string {
	if t.Signed {
		return fmt.Sprintf("int%d", t.Bits)
	}
	return fmt.Sprintf("uint%d", t.Bits)
}

// MinValue returns the smallest value representable by the type.
func (t IntegerType) MinValue() *big.Int {
	assert(t.Bits > 0, "integer type width cannot be zero")
	if !t.Signed {
		return big.NewInt(0)
	}
	// -2^(n-1)
	v := new(big.Int).Lsh(big.NewInt(1), t.Bits-1)
	return v.Neg(v)
}

// MaxValue returns the largest value representable by the type.
func (t IntegerType) MaxValue() *big.Int {
	assert(t.Bits > 0, "integer type width cannot be zero")
	bits := t.Bits
	if t.Signed {
		bits--
	}
	// 2^bits - 1
	v := new(big.Int).Lsh(big.NewInt(1), bits)
	return v.Sub(v, big.NewInt(1))
}

// RationalNumberType represents a compile-time rational constant.
type RationalNumberType struct {
	Value *big.Rat
}

// NewRationalNumberType returns a rational constant type for value.
func NewRationalNumberType(value *big.Rat) RationalNumberType {
	return RationalNumberType{Value: value}
}

// Category returns CategoryRationalNumber.
func (t RationalNumberType) Category() Category { return CategoryRationalNumber }

// String returns the string representation of the type.
func (t RationalNumberType) String() string {
	return fmt.Sprintf("rational(%s)", t.Value.RatString())
}

// IsFractional returns true if the constant has a non-integral value.
func (t RationalNumberType) IsFractional() bool {
	return !t.Value.IsInt()
}

// FixedBytesType represents a fixed-size byte string of 1 to 32 bytes.
type FixedBytesType struct {
	NumBytes uint
}

// Category returns CategoryFixedBytes.
func (t FixedBytesType) Category() Category { return CategoryFixedBytes }

// String returns the string representation of the type.
func (t FixedBytesType) String() string { return fmt.Sprintf("bytes%d", t.NumBytes) }

// AddressType represents a 160-bit account address.
type AddressType struct{}

// Category returns CategoryAddress.
func (t AddressType) Category() Category { return CategoryAddress }

// String returns the string representation of the type.
func (t AddressType) String() string { return "address" }

// BoolType represents a boolean.
type BoolType struct{}

// Category returns CategoryBool.
func (t BoolType) Category() Category { return CategoryBool }

// String returns the string representation of the type.
func (t BoolType) String() string { return "bool" }

// MappingType represents a key/value mapping.
type MappingType struct {
	Key   Type
	Value Type
}

// Category returns CategoryMapping.
func (t MappingType) Category() Category { return CategoryMapping }

// String returns the string representation of the type.
func (t MappingType) String() string {
	return fmt.Sprintf("mapping(%s => %s)", t.Key, t.Value)
}

// FunctionType represents a callable signature.
type FunctionType struct {
	Params  []Type
	Returns []Type
}

// Category returns CategoryFunction.
func (t FunctionType) Category() Category { return CategoryFunction }

// String returns the string representation of the type.
func (t FunctionType) String() string {
	var sb strings.Builder
	sb.WriteString("function(")
	for i, p := range t.Params {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(") returns (")
	for i, r := range t.Returns {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(r.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// ArrayType represents a dynamically-sized array. Not modeled by the solver.
type ArrayType struct {
	Elem Type
}

// Category returns CategoryArray.
func (t ArrayType) Category() Category { return CategoryArray }

// String returns the string representation of the type.
func (t ArrayType) String() string { return t.Elem.String() + "[]" }

// StructType represents a user-defined struct. Not modeled by the solver.
type StructType struct {
	Name string
}

// Category returns CategoryStruct.
func (t StructType) Category() Category { return CategoryStruct }

// String returns the string representation of the type.
func (t StructType) String() string { return "struct " + t.Name }

// StringType represents a dynamically-sized string. Not modeled by the solver.
type StringType struct{}

// Category returns CategoryString.
func (t StringType) Category() Category { return CategoryString }

// String returns the string representation of the type.
func (t StringType) String() string { return "string" }

// ContractType represents a contract reference. Not modeled by the solver.
type ContractType struct {
	Name string
}

// Category returns CategoryContract.
func (t ContractType) Category() Category { return CategoryContract }

// String returns the string representation of the type.
func (t ContractType) String() string { return "contract " + t.Name }

// EnumType represents a user-defined enum. Not modeled by the solver.
type EnumType struct {
	Name string
}

// Category returns CategoryEnum.
func (t EnumType) Category() Category { return CategoryEnum }

// String returns the string representation of the type.
func (t EnumType) String() string { return "enum " + t.Name }

// TupleType represents a multi-value grouping. Not modeled by the solver.
type TupleType struct {
	Elems []Type
}

// Category returns CategoryTuple.
func (t TupleType) Category() Category { return CategoryTuple }

// String returns the string representation of the type.
func (t TupleType) String() string {
	var sb strings.Builder
	sb.WriteString("tuple(")
	for i, e := range t.Elems {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(e.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// NormalizeType rewrites numeric-like types into a canonical integer
// representation: addresses become uint160, fixed byte strings become
// unsigned integers of eight bits per byte, and rational constants become
// int256. All other types are returned unchanged; mappings and functions
// keep their structure and have their leaves normalized lazily during sort
// translation.
func NormalizeType(t Type) Type {
	switch t := t.(type) {
	case AddressType:
		return NewUnsignedIntegerType(WidthAddress)
	case FixedBytesType:
		return NewUnsignedIntegerType(8 * t.NumBytes)
	case RationalNumberType:
		return NewIntegerType(WidthWord)
	default:
		return t
	}
}
