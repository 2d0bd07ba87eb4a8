package symbols

import "testing"

func TestNewTableHasBuiltins(t *testing.T) {
	table := NewTable()

	for _, name := range []string{TypeInt, TypeString, TypeBool} {
		typ, ok := table.LookupType(name)
		if !ok {
			t.Fatalf("builtin %s missing", name)
		}
		if typ.Type() != nil {
			t.Errorf("builtin %s has a type", name)
		}
	}
	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}
	if len(table.Variables()) != 0 {
		t.Error("fresh table has variables")
	}
}

func TestDefineAndLookup(t *testing.T) {
	table := NewTable()
	intType, _ := table.LookupType(TypeInt)
	strType, _ := table.LookupType(TypeString)

	table.Define(NewVariable("x", intType))
	table.Define(NewVariable("name", strType))

	v, ok := table.LookupVariable("x")
	if !ok || v.TypeName() != TypeInt {
		t.Fatalf("LookupVariable(x) = %v, %v", v, ok)
	}
	if _, ok := table.LookupVariable(TypeInt); ok {
		t.Error("a builtin type must not be returned as a variable")
	}
	if _, ok := table.Lookup("missing"); ok {
		t.Error("Lookup(missing) succeeded")
	}

	vars := table.Variables()
	if len(vars) != 2 || vars[0].Name() != "x" || vars[1].Name() != "name" {
		t.Errorf("Variables() = %v", vars)
	}

	want := "int\nstring\nbool\n<x:int>\n<name:string>"
	if got := table.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRedefineKeepsOrder(t *testing.T) {
	table := NewTable()
	boolType, _ := table.LookupType(TypeBool)
	intType, _ := table.LookupType(TypeInt)

	table.Define(NewVariable("flag", boolType))
	table.Define(NewVariable("flag", intType))

	if table.Len() != 4 {
		t.Errorf("Len() = %d, want 4", table.Len())
	}
	v, _ := table.LookupVariable("flag")
	if v.String() != "<flag:int>" {
		t.Errorf("String() = %s", v)
	}
}
