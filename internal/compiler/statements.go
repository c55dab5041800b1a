package compiler

import "github.com/nand2tetris/jackc/internal/token"

func isStatementStart(tp token.Type) bool {
	switch tp {
	case token.Let, token.If, token.While, token.Do, token.Return:
		return true
	default:
		return false
	}
}

func (c *Compiler) compileStatements() error {
	for isStatementStart(c.cur.PeekType()) {
		var err error
		switch c.cur.PeekType() {
		case token.Let:
			err = c.compileLet()
		case token.If:
			err = c.compileIf()
		case token.While:
			err = c.compileWhile()
		case token.Do:
			err = c.compileDo()
		case token.Return:
			err = c.compileReturn()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// compileLet follows the ordering the array-assignment case requires:
// the destination address is computed and left on the stack before the
// right-hand expression runs, so an RHS that itself indexes an array
// cannot clobber the pending `that` segment.
func (c *Compiler) compileLet() error {
	c.cur.Advance() // 'let'
	nameTok, err := c.expectIdentifier()
	if err != nil {
		return err
	}

	isArray := false
	if c.cur.PeekType() == token.LBracket {
		isArray = true
		if err := c.pushVariable(nameTok); err != nil {
			return err
		}
		c.cur.Advance() // '['
		if err := c.compileExpression(); err != nil {
			return err
		}
		if _, err := c.expect(token.RBracket); err != nil {
			return err
		}
		c.vm.WriteArithmetic("add")
	}

	if _, err := c.expect(token.Eq); err != nil {
		return err
	}
	if err := c.compileExpression(); err != nil {
		return err
	}
	if _, err := c.expect(token.Semicolon); err != nil {
		return err
	}

	if isArray {
		c.vm.WritePop("temp", 0)
		c.vm.WritePop("pointer", 1)
		c.vm.WritePush("temp", 0)
		c.vm.WritePop("that", 0)
		return nil
	}
	return c.popVariable(nameTok)
}

func (c *Compiler) compileIf() error {
	c.cur.Advance() // 'if'
	if _, err := c.expect(token.LParen); err != nil {
		return err
	}
	if err := c.compileExpression(); err != nil {
		return err
	}
	if _, err := c.expect(token.RParen); err != nil {
		return err
	}

	falseLabel := c.newLabel("IF_FALSE")
	endLabel := c.newLabel("IF_END")

	c.vm.WriteArithmetic("not")
	c.vm.WriteIf(falseLabel)

	if _, err := c.expect(token.LBrace); err != nil {
		return err
	}
	if err := c.compileStatements(); err != nil {
		return err
	}
	if _, err := c.expect(token.RBrace); err != nil {
		return err
	}

	c.vm.WriteGoto(endLabel)
	c.vm.WriteLabel(falseLabel)

	if c.cur.PeekType() == token.Else {
		c.cur.Advance()
		if _, err := c.expect(token.LBrace); err != nil {
			return err
		}
		if err := c.compileStatements(); err != nil {
			return err
		}
		if _, err := c.expect(token.RBrace); err != nil {
			return err
		}
	}

	c.vm.WriteLabel(endLabel)
	return nil
}

func (c *Compiler) compileWhile() error {
	c.cur.Advance() // 'while'

	expLabel := c.newLabel("WHILE_EXP")
	endLabel := c.newLabel("WHILE_END")

	c.vm.WriteLabel(expLabel)

	if _, err := c.expect(token.LParen); err != nil {
		return err
	}
	if err := c.compileExpression(); err != nil {
		return err
	}
	if _, err := c.expect(token.RParen); err != nil {
		return err
	}

	c.vm.WriteArithmetic("not")
	c.vm.WriteIf(endLabel)

	if _, err := c.expect(token.LBrace); err != nil {
		return err
	}
	if err := c.compileStatements(); err != nil {
		return err
	}
	if _, err := c.expect(token.RBrace); err != nil {
		return err
	}

	c.vm.WriteGoto(expLabel)
	c.vm.WriteLabel(endLabel)
	return nil
}

func (c *Compiler) compileDo() error {
	c.cur.Advance() // 'do'
	identTok, err := c.expectIdentifier()
	if err != nil {
		return err
	}
	if c.cur.PeekType() == token.Dot {
		c.cur.Advance()
		if err := c.compileQualifiedCall(identTok); err != nil {
			return err
		}
	} else {
		if _, err := c.expect(token.LParen); err != nil {
			return err
		}
		if err := c.compileBareCall(identTok); err != nil {
			return err
		}
	}
	if _, err := c.expect(token.Semicolon); err != nil {
		return err
	}
	c.vm.WritePop("temp", 0)
	return nil
}

// compileReturn pushes a dummy zero for a bare `return;`, since every
// function in the VM calling convention must leave a value on the stack —
// void Jack functions are called only with their result discarded by a
// `do` statement, but the callee still owes the caller a word.
func (c *Compiler) compileReturn() error {
	c.cur.Advance() // 'return'
	if c.cur.PeekType() != token.Semicolon {
		if err := c.compileExpression(); err != nil {
			return err
		}
	} else {
		c.vm.WritePush("constant", 0)
	}
	if _, err := c.expect(token.Semicolon); err != nil {
		return err
	}
	c.vm.WriteReturn()
	return nil
}
