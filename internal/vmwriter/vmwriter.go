// Package vmwriter emits Hack VM assembly text: one mnemonic per line,
// lowercase, matching the stack-machine instruction set the VM
// specification defines (push/pop/arithmetic/branch/call/function/return).
package vmwriter

import (
	"fmt"
	"io"
	"strings"
)

type Writer struct {
	out    io.Writer
	indent int
}

func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) line(format string, args ...interface{}) {
	fmt.Fprintf(w.out, "%s%s\n", strings.Repeat("    ", w.indent), fmt.Sprintf(format, args...))
}

func (w *Writer) WritePush(segment string, index int) {
	w.line("push %s %d", segment, index)
}

func (w *Writer) WritePop(segment string, index int) {
	w.line("pop %s %d", segment, index)
}

func (w *Writer) WriteArithmetic(command string) {
	w.line("%s", command)
}

func (w *Writer) WriteLabel(name string) {
	w.line("label %s", name)
}

func (w *Writer) WriteGoto(name string) {
	w.line("goto %s", name)
}

func (w *Writer) WriteIf(name string) {
	w.line("if-goto %s", name)
}

func (w *Writer) WriteCall(name string, nArgs int) {
	w.line("call %s %d", name, nArgs)
}

// WriteFunction also bumps the indentation level for the subroutine body
// that follows; WriteReturn pops it back. Purely cosmetic: it has no
// bearing on VM semantics, only on how readable the emitted .vm file is to
// a human skimming it.
func (w *Writer) WriteFunction(name string, nLocals int) {
	w.line("function %s %d", name, nLocals)
	w.indent++
}

func (w *Writer) WriteReturn() {
	w.line("return")
	if w.indent > 0 {
		w.indent--
	}
}
