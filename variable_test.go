package smtenc_test

import (
	"math/big"
	"os"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/smtenc/smtenc"
	"gopkg.in/yaml.v3"
)

func TestNewSymbolicVariable(t *testing.T) {
	t.Run("Address", func(t *testing.T) {
		r := smtenc.NewRecorder()
		abstracted, v := smtenc.NewSymbolicVariable(smtenc.AddressType{}, "owner", r)
		if abstracted {
			t.Fatal("unexpected abstraction")
		}
		if _, ok := v.(*smtenc.AddressVariable); !ok {
			t.Fatalf("unexpected variant: %s", spew.Sdump(v))
		}
		if v.Type() != smtenc.NewUnsignedIntegerType(160) {
			t.Fatalf("unexpected type: %s", v.Type())
		}
		if sort, _ := r.DeclaredSort("owner"); !smtenc.SortsEqual(sort, smtenc.IntSort{}) {
			t.Fatalf("unexpected sort: %s", sort)
		}

		smtenc.SetSymbolicUnknownValue(v, r)
		a := r.Assertions()
		if len(a) != 2 {
			t.Fatalf("unexpected assertion count: %d", len(a))
		}
		if s := a[0].String(); s != "(>= owner 0)" {
			t.Fatalf("unexpected assertion: %s", s)
		}
		if s := a[1].String(); s != "(<= owner 1461501637330902918203684832716283019655932542975)" {
			t.Fatalf("unexpected assertion: %s", s)
		}
	})

	t.Run("FixedBytes", func(t *testing.T) {
		r := smtenc.NewRecorder()
		abstracted, v := smtenc.NewSymbolicVariable(smtenc.FixedBytesType{NumBytes: 4}, "selector", r)
		if abstracted {
			t.Fatal("unexpected abstraction")
		}
		fb, ok := v.(*smtenc.FixedBytesVariable)
		if !ok {
			t.Fatalf("unexpected variant: %s", spew.Sdump(v))
		} else if fb.NumBytes() != 4 {
			t.Fatalf("unexpected byte count: %d", fb.NumBytes())
		}
		if v.Type() != smtenc.NewUnsignedIntegerType(32) {
			t.Fatalf("unexpected type: %s", v.Type())
		}

		smtenc.SetSymbolicUnknownValue(v, r)
		a := r.Assertions()
		if len(a) != 2 {
			t.Fatalf("unexpected assertion count: %d", len(a))
		}
		if s := a[1].String(); s != "(<= selector 4294967295)" {
			t.Fatalf("unexpected assertion: %s", s)
		}
	})

	t.Run("Integer", func(t *testing.T) {
		r := smtenc.NewRecorder()
		abstracted, v := smtenc.NewSymbolicVariable(smtenc.NewIntegerType(8), "temperature", r)
		if abstracted {
			t.Fatal("unexpected abstraction")
		}
		iv, ok := v.(*smtenc.IntVariable)
		if !ok {
			t.Fatalf("unexpected variant: %s", spew.Sdump(v))
		} else if iv.IntegerType() != smtenc.NewIntegerType(8) {
			t.Fatalf("unexpected type: %s", iv.IntegerType())
		}
	})

	t.Run("Bool", func(t *testing.T) {
		r := smtenc.NewRecorder()
		abstracted, v := smtenc.NewSymbolicVariable(smtenc.BoolType{}, "paused", r)
		if abstracted {
			t.Fatal("unexpected abstraction")
		}
		if _, ok := v.(*smtenc.BoolVariable); !ok {
			t.Fatalf("unexpected variant: %s", spew.Sdump(v))
		}
		if sort, _ := r.DeclaredSort("paused"); !smtenc.SortsEqual(sort, smtenc.BoolSort{}) {
			t.Fatalf("unexpected sort: %s", sort)
		}

		smtenc.SetSymbolicZeroValue(v, r)
		a := r.Assertions()
		if len(a) != 1 {
			t.Fatalf("unexpected assertion count: %d", len(a))
		}
		if s := a[0].String(); s != "(= paused false)" {
			t.Fatalf("unexpected assertion: %s", s)
		}
	})

	t.Run("Mapping", func(t *testing.T) {
		r := smtenc.NewRecorder()
		typ := smtenc.MappingType{
			Key:   smtenc.NewUnsignedIntegerType(256),
			Value: smtenc.BoolType{},
		}
		abstracted, v := smtenc.NewSymbolicVariable(typ, "allowed", r)
		if abstracted {
			t.Fatal("unexpected abstraction")
		}
		mv, ok := v.(*smtenc.MappingVariable)
		if !ok {
			t.Fatalf("unexpected variant: %s", spew.Sdump(v))
		}
		if mv.KeyType() != smtenc.NewUnsignedIntegerType(256) {
			t.Fatalf("unexpected key type: %s", mv.KeyType())
		}
		if mv.ValueType() != (smtenc.BoolType{}) {
			t.Fatalf("unexpected value type: %s", mv.ValueType())
		}
		want := smtenc.ArraySort{Key: smtenc.IntSort{}, Value: smtenc.BoolSort{}}
		if sort, _ := r.DeclaredSort("allowed"); !smtenc.SortsEqual(sort, want) {
			t.Fatalf("unexpected sort: %s", sort)
		}

		// Zero and unknown installation is undefined for mappings.
		smtenc.SetSymbolicZeroValue(v, r)
		smtenc.SetSymbolicUnknownValue(v, r)
		if n := len(r.Assertions()); n != 0 {
			t.Fatalf("unexpected assertion count: %d", n)
		}
	})

	t.Run("MappingOfAddressKeys", func(t *testing.T) {
		r := smtenc.NewRecorder()
		typ := smtenc.MappingType{
			Key:   smtenc.AddressType{},
			Value: smtenc.MappingType{Key: smtenc.AddressType{}, Value: smtenc.NewUnsignedIntegerType(256)},
		}
		_, v := smtenc.NewSymbolicVariable(typ, "allowance", r)
		want := smtenc.ArraySort{
			Key:   smtenc.IntSort{},
			Value: smtenc.ArraySort{Key: smtenc.IntSort{}, Value: smtenc.IntSort{}},
		}
		if sort := v.CurrentValue().Sort(); !smtenc.SortsEqual(sort, want) {
			t.Fatalf("unexpected sort: %s", sort)
		}
	})

	t.Run("Struct", func(t *testing.T) {
		r := smtenc.NewRecorder()
		abstracted, v := smtenc.NewSymbolicVariable(smtenc.StructType{Name: "Vault"}, "vault", r)
		if !abstracted {
			t.Fatal("expected abstraction")
		}
		iv, ok := v.(*smtenc.IntVariable)
		if !ok {
			t.Fatalf("unexpected variant: %s", spew.Sdump(v))
		} else if iv.IntegerType() != smtenc.NewIntegerType(256) {
			t.Fatalf("unexpected type: %s", iv.IntegerType())
		}
		if sort, _ := r.DeclaredSort("vault"); !smtenc.SortsEqual(sort, smtenc.IntSort{}) {
			t.Fatalf("unexpected sort: %s", sort)
		}
	})

	t.Run("Function", func(t *testing.T) {
		r := smtenc.NewRecorder()
		typ := smtenc.FunctionType{
			Params:  []smtenc.Type{smtenc.NewUnsignedIntegerType(256)},
			Returns: []smtenc.Type{smtenc.BoolType{}},
		}
		abstracted, v := smtenc.NewSymbolicVariable(typ, "callback", r)
		if !abstracted {
			t.Fatal("expected abstraction")
		}
		if _, ok := v.(*smtenc.IntVariable); !ok {
			t.Fatalf("unexpected variant: %s", spew.Sdump(v))
		}
		// Function values abstract to integers even though the type has a
		// structural function sort.
		if sort, _ := r.DeclaredSort("callback"); !smtenc.SortsEqual(sort, smtenc.IntSort{}) {
			t.Fatalf("unexpected sort: %s", sort)
		}
	})

	t.Run("RationalIntegral", func(t *testing.T) {
		r := smtenc.NewRecorder()
		abstracted, v := smtenc.NewSymbolicVariable(smtenc.NewRationalNumberType(big.NewRat(4, 2)), "two", r)
		if abstracted {
			t.Fatal("unexpected abstraction")
		}
		iv, ok := v.(*smtenc.IntVariable)
		if !ok {
			t.Fatalf("unexpected variant: %s", spew.Sdump(v))
		} else if iv.IntegerType() != smtenc.NewIntegerType(256) {
			t.Fatalf("unexpected type: %s", iv.IntegerType())
		}
	})

	t.Run("RationalFractional", func(t *testing.T) {
		r := smtenc.NewRecorder()
		abstracted, v := smtenc.NewSymbolicVariable(smtenc.NewRationalNumberType(big.NewRat(1, 3)), "third", r)
		if abstracted {
			t.Fatal("unexpected abstraction")
		}
		iv, ok := v.(*smtenc.IntVariable)
		if !ok {
			t.Fatalf("unexpected variant: %s", spew.Sdump(v))
		} else if iv.IntegerType() != smtenc.NewIntegerType(256) {
			t.Fatalf("unexpected type: %s", iv.IntegerType())
		}
	})
}

// TestNewSymbolicVariable_SortConsistency verifies that the declared sort
// of a non-abstracted variable always matches the sort translation of the
// original type.
func TestNewSymbolicVariable_SortConsistency(t *testing.T) {
	types := []smtenc.Type{
		smtenc.NewIntegerType(8),
		smtenc.NewUnsignedIntegerType(256),
		smtenc.AddressType{},
		smtenc.FixedBytesType{NumBytes: 32},
		smtenc.BoolType{},
		smtenc.NewRationalNumberType(big.NewRat(5, 1)),
		smtenc.MappingType{Key: smtenc.AddressType{}, Value: smtenc.BoolType{}},
	}
	for i, typ := range types {
		r := smtenc.NewRecorder()
		abstracted, v := smtenc.NewSymbolicVariable(typ, "v", r)
		if abstracted {
			t.Fatalf("unexpected abstraction for %s", typ)
		}
		if !smtenc.SortsEqual(v.CurrentValue().Sort(), smtenc.SortOf(typ)) {
			t.Fatalf("sort mismatch for %s (%d): %s != %s", typ, i, v.CurrentValue().Sort(), smtenc.SortOf(typ))
		}
	}
}

// TestNewSymbolicVariable_AbstractionTotality verifies that every
// unsupported type abstracts to a signed 256-bit integer.
func TestNewSymbolicVariable_AbstractionTotality(t *testing.T) {
	types := []smtenc.Type{
		smtenc.ArrayType{Elem: smtenc.NewUnsignedIntegerType(256)},
		smtenc.StructType{Name: "S"},
		smtenc.StringType{},
		smtenc.ContractType{Name: "C"},
		smtenc.EnumType{Name: "E"},
		smtenc.TupleType{Elems: []smtenc.Type{smtenc.BoolType{}}},
	}
	for _, typ := range types {
		r := smtenc.NewRecorder()
		abstracted, v := smtenc.NewSymbolicVariable(typ, "v", r)
		if !abstracted {
			t.Fatalf("expected abstraction for %s", typ)
		}
		iv, ok := v.(*smtenc.IntVariable)
		if !ok {
			t.Fatalf("unexpected variant for %s: %s", typ, spew.Sdump(v))
		} else if iv.IntegerType() != smtenc.NewIntegerType(256) {
			t.Fatalf("unexpected type for %s: %s", typ, iv.IntegerType())
		}
		if !smtenc.SortsEqual(v.CurrentValue().Sort(), smtenc.IntSort{}) {
			t.Fatalf("unexpected sort for %s: %s", typ, v.CurrentValue().Sort())
		}
	}
}

func TestSymbolicVariable_SetCurrentValue(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		r := smtenc.NewRecorder()
		_, v := smtenc.NewSymbolicVariable(smtenc.NewUnsignedIntegerType(256), "x", r)
		v.SetCurrentValue(smtenc.NewSymbolExpr("x$1", smtenc.IntSort{}))
		if s := v.CurrentValue().String(); s != "x$1" {
			t.Fatalf("unexpected value: %s", s)
		}
	})
	t.Run("SortMismatch", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected panic")
			}
		}()
		r := smtenc.NewRecorder()
		_, v := smtenc.NewSymbolicVariable(smtenc.NewUnsignedIntegerType(256), "x", r)
		v.SetCurrentValue(smtenc.NewBoolConstantExpr(true))
	})
}

// variableFixture is a yaml-encoded factory scenario.
type variableFixture struct {
	Name       string `yaml:"name"`
	Category   string `yaml:"category"`
	Bits       uint   `yaml:"bits"`
	Signed     bool   `yaml:"signed"`
	Bytes      uint   `yaml:"bytes"`
	Variant    string `yaml:"variant"`
	Abstracted bool   `yaml:"abstracted"`
	Sort       string `yaml:"sort"`
	Min        string `yaml:"min"`
	Max        string `yaml:"max"`
}

func (f *variableFixture) Type(tb testing.TB) smtenc.Type {
	tb.Helper()
	switch f.Category {
	case "integer":
		return smtenc.IntegerType{Bits: f.Bits, Signed: f.Signed}
	case "address":
		return smtenc.AddressType{}
	case "fixedbytes":
		return smtenc.FixedBytesType{NumBytes: f.Bytes}
	case "bool":
		return smtenc.BoolType{}
	case "string":
		return smtenc.StringType{}
	case "struct":
		return smtenc.StructType{Name: f.Name}
	default:
		tb.Fatalf("unknown fixture category: %s", f.Category)
		return nil
	}
}

func TestNewSymbolicVariable_Fixtures(t *testing.T) {
	buf, err := os.ReadFile("testdata/variables.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var fixtures []*variableFixture
	if err := yaml.Unmarshal(buf, &fixtures); err != nil {
		t.Fatal(err)
	}

	for _, f := range fixtures {
		f := f
		t.Run(f.Name, func(t *testing.T) {
			r := smtenc.NewRecorder()
			abstracted, v := smtenc.NewSymbolicVariable(f.Type(t), f.Name, r)
			if abstracted != f.Abstracted {
				t.Fatalf("unexpected abstraction: %v", abstracted)
			}
			if got := variantName(v); got != f.Variant {
				t.Fatalf("unexpected variant: %s, want %s: %s", got, f.Variant, spew.Sdump(v))
			}
			if sort, _ := r.DeclaredSort(f.Name); sort.String() != f.Sort {
				t.Fatalf("unexpected sort: %s, want %s", sort, f.Sort)
			}

			if f.Min == "" {
				return
			}
			smtenc.SetSymbolicUnknownValue(v, r)
			a := r.Assertions()
			if len(a) != 2 {
				t.Fatalf("unexpected assertion count: %d", len(a))
			}
			if want := "(>= " + f.Name + " " + f.Min + ")"; a[0].String() != want {
				t.Fatalf("unexpected assertion: %s, want %s", a[0], want)
			}
			if want := "(<= " + f.Name + " " + f.Max + ")"; a[1].String() != want {
				t.Fatalf("unexpected assertion: %s, want %s", a[1], want)
			}
		})
	}
}

func variantName(v smtenc.SymbolicVariable) string {
	switch v.(type) {
	case *smtenc.IntVariable:
		return "int"
	case *smtenc.BoolVariable:
		return "bool"
	case *smtenc.FixedBytesVariable:
		return "fixedbytes"
	case *smtenc.AddressVariable:
		return "address"
	case *smtenc.MappingVariable:
		return "mapping"
	default:
		return "unknown"
	}
}
