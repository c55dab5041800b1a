// Package symboltable tracks the two live scopes of a Jack class being
// compiled: the class scope (static and field variables, which persist for
// the whole class) and the subroutine scope (argument and local variables,
// which are discarded when a new subroutine starts). Lookup checks
// subroutine scope first so a parameter or local correctly shadows a field
// of the same name.
package symboltable

import "github.com/nand2tetris/jackc/internal/jerr"

type Kind int

const (
	Static Kind = iota
	Field
	Arg
	Var
	None // reported by KindOf when a lookup fails
)

// Segment is the VM memory segment a kind is stored in.
func (k Kind) Segment() string {
	switch k {
	case Static:
		return "static"
	case Field:
		return "this"
	case Arg:
		return "argument"
	case Var:
		return "local"
	default:
		return ""
	}
}

type entry struct {
	varType string
	kind    Kind
	index   int
}

type Table struct {
	class      map[string]entry
	subroutine map[string]entry

	staticIndex int
	fieldIndex  int
	argIndex    int
	varIndex    int
}

func New() *Table {
	return &Table{
		class:      make(map[string]entry),
		subroutine: make(map[string]entry),
	}
}

// StartSubroutine clears only the subroutine scope: arguments and locals
// from the previous subroutine. Class-scope statics and fields survive
// untouched.
func (t *Table) StartSubroutine() {
	t.subroutine = make(map[string]entry)
	t.argIndex = 0
	t.varIndex = 0
}

// Define adds name to the appropriate scope for its kind and returns the
// index it was assigned. It fails if name is already defined in that
// scope — a duplicate field/static, or a duplicate argument/local, is a
// symbol error, not a silent shadow or overwrite. line is the source line
// of the redefinition, for the reported error. Static and Field indices
// are dense within this table only — a fresh Table per class keeps them
// from leaking across classes.
func (t *Table) Define(name, varType string, kind Kind, line int) (int, error) {
	scope := t.subroutine
	if kind == Static || kind == Field {
		scope = t.class
	}
	if _, ok := scope[name]; ok {
		return 0, jerr.Symbolf(line, "%q is already defined in this scope", name)
	}

	var idx int
	switch kind {
	case Static:
		idx = t.staticIndex
		t.staticIndex++
	case Field:
		idx = t.fieldIndex
		t.fieldIndex++
	case Arg:
		idx = t.argIndex
		t.argIndex++
	case Var:
		idx = t.varIndex
		t.varIndex++
	}
	scope[name] = entry{varType, kind, idx}
	return idx, nil
}

// VarCount returns how many variables of kind have been defined so far.
func (t *Table) VarCount(kind Kind) int {
	switch kind {
	case Static:
		return t.staticIndex
	case Field:
		return t.fieldIndex
	case Arg:
		return t.argIndex
	case Var:
		return t.varIndex
	default:
		return 0
	}
}

// KindOf, TypeOf and IndexOf all look in subroutine scope before class
// scope. When name is undeclared, KindOf returns None, TypeOf reports
// false and IndexOf returns -1; the caller (the symbol resolution step in the code generator) turns that
// into a reported error with source position.
func (t *Table) KindOf(name string) Kind {
	if e, ok := t.subroutine[name]; ok {
		return e.kind
	}
	if e, ok := t.class[name]; ok {
		return e.kind
	}
	return None
}

func (t *Table) TypeOf(name string) (string, bool) {
	if e, ok := t.subroutine[name]; ok {
		return e.varType, true
	}
	if e, ok := t.class[name]; ok {
		return e.varType, true
	}
	return "", false
}

func (t *Table) IndexOf(name string) int {
	if e, ok := t.subroutine[name]; ok {
		return e.index
	}
	if e, ok := t.class[name]; ok {
		return e.index
	}
	return -1
}
