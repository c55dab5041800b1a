package symboltable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_DefineAssignsDenseIndicesPerKind(t *testing.T) {
	table := New()
	idx, err := table.Define("x", "int", Field, 1)
	require.Nil(t, err)
	assert.Equal(t, 0, idx)

	idx, err = table.Define("y", "int", Field, 1)
	require.Nil(t, err)
	assert.Equal(t, 1, idx)

	idx, err = table.Define("count", "int", Static, 1)
	require.Nil(t, err)
	assert.Equal(t, 0, idx)

	assert.Equal(t, 2, table.VarCount(Field))
	assert.Equal(t, 1, table.VarCount(Static))
}

func TestTable_StartSubroutineClearsOnlySubroutineScope(t *testing.T) {
	table := New()
	_, err := table.Define("field1", "int", Field, 1)
	require.Nil(t, err)
	_, err = table.Define("arg1", "int", Arg, 1)
	require.Nil(t, err)
	_, err = table.Define("local1", "int", Var, 1)
	require.Nil(t, err)

	table.StartSubroutine()

	assert.Equal(t, Field, table.KindOf("field1"))
	assert.Equal(t, None, table.KindOf("arg1"))
	assert.Equal(t, None, table.KindOf("local1"))
	assert.Equal(t, 0, table.VarCount(Arg))
	assert.Equal(t, 0, table.VarCount(Var))
}

func TestTable_SubroutineScopeShadowsClassScope(t *testing.T) {
	table := New()
	_, err := table.Define("x", "int", Field, 1)
	require.Nil(t, err)
	table.StartSubroutine()
	_, err = table.Define("x", "boolean", Var, 1)
	require.Nil(t, err)

	assert.Equal(t, Var, table.KindOf("x"))
	varType, ok := table.TypeOf("x")
	assert.True(t, ok)
	assert.Equal(t, "boolean", varType)
}

func TestTable_KindOfUndeclaredIsNone(t *testing.T) {
	table := New()
	assert.Equal(t, None, table.KindOf("nope"))
	_, ok := table.TypeOf("nope")
	assert.False(t, ok)
}

func TestKind_Segment(t *testing.T) {
	testData := []struct {
		kind Kind
		want string
	}{
		{Static, "static"},
		{Field, "this"},
		{Arg, "argument"},
		{Var, "local"},
	}
	for _, testD := range testData {
		assert.Equal(t, testD.want, testD.kind.Segment())
	}
}

func TestTable_StaticIndicesResetPerClass(t *testing.T) {
	classA := New()
	_, err := classA.Define("s1", "int", Static, 1)
	require.Nil(t, err)
	_, err = classA.Define("s2", "int", Static, 1)
	require.Nil(t, err)

	classB := New()
	idx, err := classB.Define("onlyStatic", "int", Static, 1)
	require.Nil(t, err)

	assert.Equal(t, 0, idx)
}

func TestTable_DefineFailsOnDuplicateInSameScope(t *testing.T) {
	testData := []struct {
		name string
		kind Kind
	}{
		{"static", Static},
		{"field", Field},
		{"arg", Arg},
		{"var", Var},
	}
	for _, testD := range testData {
		t.Run(testD.name, func(t *testing.T) {
			table := New()
			_, err := table.Define("x", "int", testD.kind, 3)
			require.Nil(t, err)

			_, err = table.Define("x", "int", testD.kind, 4)
			assert.NotNil(t, err)
			assert.Contains(t, err.Error(), "symbol error")
			assert.Contains(t, err.Error(), "line 4")
		})
	}
}

func TestTable_DefineAllowsSameNameInDifferentScopeKinds(t *testing.T) {
	// A subroutine-scope var may share a name with a class-scope field;
	// this is shadowing, not redefinition, and must succeed.
	table := New()
	_, err := table.Define("x", "int", Field, 1)
	require.Nil(t, err)
	_, err = table.Define("x", "int", Var, 2)
	assert.Nil(t, err)
}
