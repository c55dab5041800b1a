package compiler

import (
	"github.com/nand2tetris/jackc/internal/jerr"
	"github.com/nand2tetris/jackc/internal/symboltable"
	"github.com/nand2tetris/jackc/internal/token"
)

var arithmeticOp = map[token.Type]string{
	token.Plus:  "add",
	token.Minus: "sub",
	token.Amp:   "and",
	token.Pipe:  "or",
	token.Lt:    "lt",
	token.Gt:    "gt",
	token.Eq:    "eq",
}

// compileExpression folds strictly left to right: Jack defines no
// operator precedence, so each (op term) pair is emitted as soon as it is
// read rather than being assembled into a priority-ordered tree first.
func (c *Compiler) compileExpression() error {
	if err := c.compileTerm(); err != nil {
		return err
	}
	for token.BinaryOps[c.cur.PeekType()] {
		op := c.cur.Advance()
		if err := c.compileTerm(); err != nil {
			return err
		}
		switch op.Type {
		case token.Star:
			c.vm.WriteCall("Math.multiply", 2)
		case token.Slash:
			c.vm.WriteCall("Math.divide", 2)
		default:
			c.vm.WriteArithmetic(arithmeticOp[op.Type])
		}
	}
	return nil
}

func (c *Compiler) compileTerm() error {
	switch c.cur.PeekType() {
	case token.IntConst:
		tok := c.cur.Advance()
		c.vm.WritePush("constant", tok.IntVal)
		return nil

	case token.StringConst:
		tok := c.cur.Advance()
		c.compileStringConstant(tok.Text)
		return nil

	case token.True:
		c.cur.Advance()
		c.vm.WritePush("constant", 0)
		c.vm.WriteArithmetic("not")
		return nil

	case token.False, token.Null:
		c.cur.Advance()
		c.vm.WritePush("constant", 0)
		return nil

	case token.This:
		c.cur.Advance()
		c.vm.WritePush("pointer", 0)
		return nil

	case token.LParen:
		c.cur.Advance()
		if err := c.compileExpression(); err != nil {
			return err
		}
		_, err := c.expect(token.RParen)
		return err

	case token.Minus:
		c.cur.Advance()
		if err := c.compileTerm(); err != nil {
			return err
		}
		c.vm.WriteArithmetic("neg")
		return nil

	case token.Tilde:
		c.cur.Advance()
		if err := c.compileTerm(); err != nil {
			return err
		}
		c.vm.WriteArithmetic("not")
		return nil

	case token.Identifier:
		return c.compileIdentifierTerm()

	default:
		got := c.cur.Peek()
		return jerr.Parsef(got.Line, "expected a term, found %s", got)
	}
}

// compileIdentifierTerm is the parser's one genuine disambiguation point:
// an identifier alone could be a plain variable read, an array access, a
// call to a subroutine of the current class, or a call qualified by a
// class or variable name. The follow token is consumed speculatively to
// inspect it, then handed back with Rewind if it turns out to belong to
// whatever comes after this term rather than to the term itself.
func (c *Compiler) compileIdentifierTerm() error {
	identTok := c.cur.Advance()
	c.cur.Mark()
	follow := c.cur.Advance()

	switch follow.Type {
	case token.LBracket:
		return c.compileArrayAccess(identTok)
	case token.LParen:
		return c.compileBareCall(identTok)
	case token.Dot:
		return c.compileQualifiedCall(identTok)
	default:
		c.cur.Rewind()
		return c.pushVariable(identTok)
	}
}

func (c *Compiler) compileArrayAccess(identTok token.Token) error {
	if err := c.pushVariable(identTok); err != nil {
		return err
	}
	if err := c.compileExpression(); err != nil {
		return err
	}
	if _, err := c.expect(token.RBracket); err != nil {
		return err
	}
	c.vm.WriteArithmetic("add")
	c.vm.WritePop("pointer", 1)
	c.vm.WritePush("that", 0)
	return nil
}

// compileBareCall assumes the opening '(' has already been consumed by
// the caller; it is a call to a subroutine of the compiling class, so the
// implicit `this` is passed as argument 0.
func (c *Compiler) compileBareCall(identTok token.Token) error {
	c.vm.WritePush("pointer", 0)
	n, err := c.compileExpressionList()
	if err != nil {
		return err
	}
	if _, err := c.expect(token.RParen); err != nil {
		return err
	}
	c.vm.WriteCall(c.className+"."+identTok.Text, n+1)
	return nil
}

// compileQualifiedCall assumes the '.' has already been consumed by the
// caller. identTok names either a local/field/static/argument variable
// (a method call on that object) or another class (a function or
// constructor call).
func (c *Compiler) compileQualifiedCall(identTok token.Token) error {
	subTok, err := c.expectIdentifier()
	if err != nil {
		return err
	}
	if _, err := c.expect(token.LParen); err != nil {
		return err
	}

	var name string
	extraArg := 0
	if varType, ok := c.symbols.TypeOf(identTok.Text); ok {
		if err := c.pushVariable(identTok); err != nil {
			return err
		}
		extraArg = 1
		name = varType + "." + subTok.Text
	} else {
		name = identTok.Text + "." + subTok.Text
	}

	n, err := c.compileExpressionList()
	if err != nil {
		return err
	}
	if _, err := c.expect(token.RParen); err != nil {
		return err
	}
	c.vm.WriteCall(name, n+extraArg)
	return nil
}

// compileExpressionList assumes the opening '(' has already been
// consumed and stops without consuming the closing ')'.
func (c *Compiler) compileExpressionList() (int, error) {
	if c.cur.PeekType() == token.RParen {
		return 0, nil
	}
	count := 0
	for {
		if err := c.compileExpression(); err != nil {
			return 0, err
		}
		count++
		if c.cur.PeekType() != token.Comma {
			break
		}
		c.cur.Advance()
	}
	return count, nil
}

// compileStringConstant builds the string via repeated String.appendChar
// calls, matching how the Jack OS's String class is defined: there is no
// dedicated string-literal VM instruction.
func (c *Compiler) compileStringConstant(s string) {
	c.vm.WritePush("constant", len(s))
	c.vm.WriteCall("String.new", 1)
	for i := 0; i < len(s); i++ {
		c.vm.WritePush("constant", int(s[i]))
		c.vm.WriteCall("String.appendChar", 2)
	}
}

func (c *Compiler) pushVariable(tok token.Token) error {
	kind := c.symbols.KindOf(tok.Text)
	if kind == symboltable.None {
		return jerr.Symbolf(tok.Line, "undeclared identifier %q", tok.Text)
	}
	c.vm.WritePush(kind.Segment(), c.symbols.IndexOf(tok.Text))
	return nil
}

func (c *Compiler) popVariable(tok token.Token) error {
	kind := c.symbols.KindOf(tok.Text)
	if kind == symboltable.None {
		return jerr.Symbolf(tok.Line, "undeclared identifier %q", tok.Text)
	}
	c.vm.WritePop(kind.Segment(), c.symbols.IndexOf(tok.Text))
	return nil
}
