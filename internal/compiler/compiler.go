// Package compiler implements the single-pass Jack parser/code generator:
// it walks the token stream once, resolving identifiers against a
// per-class symbol table and emitting VM instructions as it goes, with no
// intermediate syntax tree.
package compiler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nand2tetris/jackc/internal/cursor"
	"github.com/nand2tetris/jackc/internal/jerr"
	"github.com/nand2tetris/jackc/internal/lexer"
	"github.com/nand2tetris/jackc/internal/symboltable"
	"github.com/nand2tetris/jackc/internal/token"
	"github.com/nand2tetris/jackc/internal/vmwriter"
)

// Compiler holds the state live for exactly one class: its token cursor,
// its VM output, its symbol table, and the monotonic label counter shared
// by every if/while in the class.
type Compiler struct {
	cur     *cursor.Cursor
	vm      *vmwriter.Writer
	symbols *symboltable.Table

	className    string
	labelCounter int
}

func newCompiler(tokens []token.Token, out io.Writer) *Compiler {
	return &Compiler{
		cur:     cursor.New(tokens),
		vm:      vmwriter.New(out),
		symbols: symboltable.New(),
	}
}

// CompileClass tokenizes and compiles a single class from src, writing VM
// instructions to out. Each call gets its own symbol table and label
// counter; classes never share compiler state.
func CompileClass(src io.Reader, out io.Writer) error {
	tokens, err := lexer.New(src).Tokenize()
	if err != nil {
		return err
	}
	c := newCompiler(tokens, out)
	if !c.cur.More() {
		return jerr.Parsef(0, "empty source file")
	}
	return c.compileClass()
}

// Compile walks path (a directory or a single file) compiling every .jack
// file it finds into a sibling .vm file, independently of every other file
// in the walk; a failure on one file does not affect the others. It
// reports, per file, what it wrote or why it failed, and removes any
// partially written .vm output left behind by a failed compile.
func Compile(path string) error {
	files, err := collectJackFiles(path)
	if err != nil {
		return err
	}
	var firstErr error
	for _, f := range files {
		outPath := strings.TrimSuffix(f, ".jack") + ".vm"
		fmt.Printf("compiling %s\n", f)
		if err := compileOneFile(f, outPath); err != nil {
			fmt.Printf("failed to compile %s: %v\n", f, err)
			os.Remove(outPath)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fmt.Printf("wrote %s\n", outPath)
	}
	return firstErr
}

func compileOneFile(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	return CompileClass(in, out)
}

func collectJackFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if !strings.HasSuffix(path, ".jack") {
			return nil, fmt.Errorf("%s is not a .jack file", path)
		}
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jack") {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	return files, nil
}

func (c *Compiler) expect(tp token.Type) (token.Token, error) {
	if c.cur.PeekType() != tp {
		got := c.cur.Peek()
		return token.Token{}, jerr.Parsef(got.Line, "expected %s, found %s", tp, got)
	}
	return c.cur.Advance(), nil
}

func (c *Compiler) expectIdentifier() (token.Token, error) {
	return c.expect(token.Identifier)
}

// compileType consumes a type name: one of the three primitives or a
// class name.
func (c *Compiler) compileType() (string, error) {
	switch c.cur.PeekType() {
	case token.Int, token.Char, token.Boolean, token.Identifier:
		return c.cur.Advance().Text, nil
	default:
		got := c.cur.Peek()
		return "", jerr.Parsef(got.Line, "expected a type, found %s", got)
	}
}

func (c *Compiler) newLabel(prefix string) string {
	n := c.labelCounter
	c.labelCounter++
	return fmt.Sprintf("%s%d", prefix, n)
}

func (c *Compiler) compileClass() error {
	if _, err := c.expect(token.Class); err != nil {
		return err
	}
	nameTok, err := c.expectIdentifier()
	if err != nil {
		return err
	}
	c.className = nameTok.Text

	if _, err := c.expect(token.LBrace); err != nil {
		return err
	}

	for c.cur.PeekType() == token.Static || c.cur.PeekType() == token.Field {
		if err := c.compileClassVarDec(); err != nil {
			return err
		}
	}

	for isSubroutineStart(c.cur.PeekType()) {
		if err := c.compileSubroutineDec(); err != nil {
			return err
		}
	}

	_, err = c.expect(token.RBrace)
	return err
}

func isSubroutineStart(tp token.Type) bool {
	return tp == token.Constructor || tp == token.Function || tp == token.Method
}

func (c *Compiler) compileClassVarDec() error {
	kindTok := c.cur.Advance()
	kind := symboltable.Static
	if kindTok.Type == token.Field {
		kind = symboltable.Field
	}
	varType, err := c.compileType()
	if err != nil {
		return err
	}
	for {
		nameTok, err := c.expectIdentifier()
		if err != nil {
			return err
		}
		if _, err := c.symbols.Define(nameTok.Text, varType, kind, nameTok.Line); err != nil {
			return err
		}
		if c.cur.PeekType() != token.Comma {
			break
		}
		c.cur.Advance()
	}
	_, err = c.expect(token.Semicolon)
	return err
}

func (c *Compiler) compileSubroutineDec() error {
	c.symbols.StartSubroutine()

	kindTok := c.cur.Advance() // constructor | function | method

	// Return type: void or a type name, unused beyond being consumed —
	// this compiler does not type-check return values.
	if c.cur.PeekType() == token.Void {
		c.cur.Advance()
	} else if _, err := c.compileType(); err != nil {
		return err
	}

	nameTok, err := c.expectIdentifier()
	if err != nil {
		return err
	}

	if kindTok.Type == token.Method {
		if _, err := c.symbols.Define("this", c.className, symboltable.Arg, nameTok.Line); err != nil {
			return err
		}
	}

	if _, err := c.expect(token.LParen); err != nil {
		return err
	}
	if err := c.compileParameterList(); err != nil {
		return err
	}
	if _, err := c.expect(token.RParen); err != nil {
		return err
	}

	if _, err := c.expect(token.LBrace); err != nil {
		return err
	}
	if err := c.compileVarDecs(); err != nil {
		return err
	}

	c.vm.WriteFunction(c.className+"."+nameTok.Text, c.symbols.VarCount(symboltable.Var))

	switch kindTok.Type {
	case token.Constructor:
		c.vm.WritePush("constant", c.symbols.VarCount(symboltable.Field))
		c.vm.WriteCall("Memory.alloc", 1)
		c.vm.WritePop("pointer", 0)
	case token.Method:
		c.vm.WritePush("argument", 0)
		c.vm.WritePop("pointer", 0)
	}

	if err := c.compileStatements(); err != nil {
		return err
	}
	_, err = c.expect(token.RBrace)
	return err
}

func (c *Compiler) compileParameterList() error {
	if c.cur.PeekType() == token.RParen {
		return nil
	}
	for {
		varType, err := c.compileType()
		if err != nil {
			return err
		}
		nameTok, err := c.expectIdentifier()
		if err != nil {
			return err
		}
		if _, err := c.symbols.Define(nameTok.Text, varType, symboltable.Arg, nameTok.Line); err != nil {
			return err
		}
		if c.cur.PeekType() != token.Comma {
			break
		}
		c.cur.Advance()
	}
	return nil
}

func (c *Compiler) compileVarDecs() error {
	for c.cur.PeekType() == token.Var {
		c.cur.Advance()
		varType, err := c.compileType()
		if err != nil {
			return err
		}
		for {
			nameTok, err := c.expectIdentifier()
			if err != nil {
				return err
			}
			if _, err := c.symbols.Define(nameTok.Text, varType, symboltable.Var, nameTok.Line); err != nil {
				return err
			}
			if c.cur.PeekType() != token.Comma {
				break
			}
			c.cur.Advance()
		}
		if _, err := c.expect(token.Semicolon); err != nil {
			return err
		}
	}
	return nil
}
