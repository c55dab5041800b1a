package vmwriter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_PushAndPop(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	w.WritePush("constant", 7)
	w.WritePop("local", 2)
	assert.Equal(t, "push constant 7\npop local 2\n", buf.String())
}

func TestWriter_Arithmetic(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	w.WriteArithmetic("add")
	w.WriteArithmetic("not")
	assert.Equal(t, "add\nnot\n", buf.String())
}

func TestWriter_Branching(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	w.WriteLabel("LOOP0")
	w.WriteGoto("LOOP0")
	w.WriteIf("LOOP0")
	assert.Equal(t, "label LOOP0\ngoto LOOP0\nif-goto LOOP0\n", buf.String())
}

func TestWriter_CallFunctionReturn(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	w.WriteCall("Math.multiply", 2)
	w.WriteFunction("Main.main", 1)
	w.WritePush("constant", 0)
	w.WriteReturn()
	assert.Equal(t, "call Math.multiply 2\nfunction Main.main 1\n    push constant 0\n    return\n", buf.String())
}
