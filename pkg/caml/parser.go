package caml

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parser is a recursive-descent parser over a token stream. It has no
// error recovery: the first unrecoverable mismatch aborts the parse.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse turns a token stream into a list of top-level phrases, one per
// `;;`-delimited statement. The trailing `;;` is optional on the final
// phrase.
func Parse(tokens []Token) ([]Node, error) {
	p := &Parser{tokens: tokens}
	var phrases []Node
	for {
		for p.check(SEMISEMI) {
			p.next()
		}
		if p.check(EOF) {
			return phrases, nil
		}
		phrase, err := p.parsePhrase()
		if err != nil {
			return nil, err
		}
		phrases = append(phrases, phrase)
		if !p.check(SEMISEMI) && !p.check(EOF) {
			return nil, p.unexpected(";;")
		}
	}
}

func (p *Parser) peek() Token { return p.tokens[p.pos] }

func (p *Parser) peekAt(off int) Token {
	if p.pos+off >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+off]
}

func (p *Parser) next() Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(tt TokenType) bool { return p.peek().Type == tt }

func (p *Parser) accept(tt TokenType) bool {
	if p.check(tt) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(tt TokenType, what string) (Token, error) {
	if !p.check(tt) {
		return Token{}, p.unexpected(what)
	}
	return p.next(), nil
}

func (p *Parser) unexpected(expected string) error {
	tok := p.peek()
	return syntaxErrorf(tok.Line, tok.Col, "expected %s, got %s", expected, tok.String())
}

func (p *Parser) loc() *SourceLocation {
	tok := p.peek()
	return &SourceLocation{Line: tok.Line, Column: tok.Col}
}

func locOf(tok Token) *SourceLocation {
	return &SourceLocation{Line: tok.Line, Column: tok.Col}
}

// --- phrases ---

func (p *Parser) parsePhrase() (Node, error) {
	switch p.peek().Type {
	case TYPE:
		return p.parseTypeDecl()
	case EXCEPTION:
		return p.parseExceptionDecl()
	case OPEN:
		tok := p.next()
		name, err := p.expect(UIDENT, "a module name")
		if err != nil {
			return nil, err
		}
		return &OpenDecl{Module: name.Lexeme, Loc: locOf(tok)}, nil
	case LET:
		return p.parseLetPhrase()
	default:
		return p.parseExpr()
	}
}

// parseLetPhrase parses a top-level let. If `in` follows the bindings the
// whole thing is an expression; otherwise it is a definition phrase.
func (p *Parser) parseLetPhrase() (Node, error) {
	tok := p.next() // let
	rec := p.accept(REC)
	bindings, err := p.parseLetBindings()
	if err != nil {
		return nil, err
	}
	let := &Let{Rec: rec, Bindings: bindings, Loc: locOf(tok)}
	if p.accept(IN) {
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		let.Body = body
	}
	return let, nil
}

func (p *Parser) parseLetBindings() ([]*LetBinding, error) {
	var bindings []*LetBinding
	for {
		b, err := p.parseLetBinding()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
		if !p.accept(AND) {
			return bindings, nil
		}
	}
}

func (p *Parser) parseLetBinding() (*LetBinding, error) {
	loc := p.loc()
	b := &LetBinding{Loc: loc}
	if p.check(IDENT) {
		b.Name = p.next().Lexeme
		for !p.check(EQ) && !p.check(EOF) {
			param, err := p.parsePatternAtom()
			if err != nil {
				return nil, err
			}
			b.Params = append(b.Params, param)
		}
	} else {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		b.Pattern = pat
	}
	if _, err := p.expect(EQ, "'='"); err != nil {
		return nil, err
	}
	expr, err := p.parseExprNoSeq()
	if err != nil {
		return nil, err
	}
	b.Expr = expr
	return b, nil
}

// --- type declarations ---

func (p *Parser) parseTypeDecl() (Node, error) {
	tok := p.next() // type
	decl := &TypeDecl{Loc: locOf(tok)}
	if p.check(TYVAR) {
		decl.Params = append(decl.Params, p.next().Lexeme)
	} else if p.check(LPAREN) && p.peekAt(1).Type == TYVAR {
		p.next()
		for {
			tv, err := p.expect(TYVAR, "a type variable")
			if err != nil {
				return nil, err
			}
			decl.Params = append(decl.Params, tv.Lexeme)
			if !p.accept(COMMA) {
				break
			}
		}
		if _, err := p.expect(RPAREN, "')'"); err != nil {
			return nil, err
		}
	}
	name, err := p.expect(IDENT, "a type name")
	if err != nil {
		return nil, err
	}
	decl.Name = name.Lexeme
	if _, err := p.expect(EQ, "'='"); err != nil {
		return nil, err
	}
	switch {
	case p.check(LBRACE):
		p.next()
		for {
			mutable := p.accept(MUTABLE)
			fname, err := p.expect(IDENT, "a field name")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(COLON, "':'"); err != nil {
				return nil, err
			}
			ftype := p.parseTypeExpr()
			decl.Fields = append(decl.Fields, FieldDecl{Name: fname.Lexeme, Type: ftype, Mutable: mutable})
			if !p.accept(SEMI) {
				break
			}
			if p.check(RBRACE) {
				break
			}
		}
		if _, err := p.expect(RBRACE, "'}'"); err != nil {
			return nil, err
		}
	case p.check(BAR) || p.check(UIDENT):
		p.accept(BAR)
		for {
			cname, err := p.expect(UIDENT, "a constructor name")
			if err != nil {
				return nil, err
			}
			vc := VariantCase{Name: cname.Lexeme}
			if p.accept(OF) {
				vc.ArgType = p.parseTypeExpr()
			}
			decl.Variants = append(decl.Variants, vc)
			if !p.accept(BAR) {
				break
			}
		}
	default:
		decl.Alias = p.parseTypeExpr()
		if decl.Alias == "" {
			return nil, p.unexpected("a type expression")
		}
	}
	return decl, nil
}

func (p *Parser) parseExceptionDecl() (Node, error) {
	tok := p.next() // exception
	name, err := p.expect(UIDENT, "an exception name")
	if err != nil {
		return nil, err
	}
	decl := &ExceptionDecl{Name: name.Lexeme, Loc: locOf(tok)}
	if p.accept(OF) {
		decl.ArgType = p.parseTypeExpr()
	}
	return decl, nil
}

// parseTypeExpr consumes a loose type expression and returns its rendered
// text. Types are display-only, so no structure is kept.
func (p *Parser) parseTypeExpr() string {
	var parts []string
	depth := 0
	for {
		switch p.peek().Type {
		case IDENT, UIDENT, TYVAR, STAR, ARROW, REF:
			parts = append(parts, p.next().Lexeme)
		case LPAREN:
			depth++
			parts = append(parts, p.next().Lexeme)
		case RPAREN:
			if depth == 0 {
				return strings.Join(parts, " ")
			}
			depth--
			parts = append(parts, p.next().Lexeme)
		default:
			return strings.Join(parts, " ")
		}
	}
}

// --- expressions ---

// parseExpr parses an expression including `;` sequencing, the loosest
// level.
func (p *Parser) parseExpr() (Node, error) {
	loc := p.loc()
	first, err := p.parseExprNoSeq()
	if err != nil {
		return nil, err
	}
	if !p.check(SEMI) {
		return first, nil
	}
	exprs := []Node{first}
	for p.accept(SEMI) {
		e, err := p.parseExprNoSeq()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return &Sequence{Exprs: exprs, Loc: loc}, nil
}

func (p *Parser) parseExprNoSeq() (Node, error) {
	switch p.peek().Type {
	case IF:
		return p.parseIf()
	case MATCH:
		return p.parseMatch()
	case TRY:
		return p.parseTry()
	case FUN:
		return p.parseFun()
	case FUNCTION:
		return p.parseFunction()
	case LET:
		return p.parseLetExpr()
	case FOR:
		return p.parseFor()
	case WHILE:
		return p.parseWhile()
	case RAISE:
		tok := p.next()
		operand, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return &Raise{Expr: operand, Loc: locOf(tok)}, nil
	default:
		return p.parseAssign()
	}
}

func (p *Parser) parseLetExpr() (Node, error) {
	tok := p.next() // let
	rec := p.accept(REC)
	bindings, err := p.parseLetBindings()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(IN, "'in'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &Let{Rec: rec, Bindings: bindings, Body: body, Loc: locOf(tok)}, nil
}

func (p *Parser) parseIf() (Node, error) {
	tok := p.next() // if
	cond, err := p.parseExprNoSeq()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(THEN, "'then'"); err != nil {
		return nil, err
	}
	thenBranch, err := p.parseExprNoSeq()
	if err != nil {
		return nil, err
	}
	node := &If{Cond: cond, Then: thenBranch, Loc: locOf(tok)}
	if p.accept(ELSE) {
		elseBranch, err := p.parseExprNoSeq()
		if err != nil {
			return nil, err
		}
		node.Else = elseBranch
	}
	return node, nil
}

func (p *Parser) parseMatch() (Node, error) {
	tok := p.next() // match
	scrutinee, err := p.parseExprNoSeq()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(WITH, "'with'"); err != nil {
		return nil, err
	}
	cases, err := p.parseCases()
	if err != nil {
		return nil, err
	}
	return &MatchExpr{Scrutinee: scrutinee, Cases: cases, Loc: locOf(tok)}, nil
}

func (p *Parser) parseTry() (Node, error) {
	tok := p.next() // try
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(WITH, "'with'"); err != nil {
		return nil, err
	}
	cases, err := p.parseCases()
	if err != nil {
		return nil, err
	}
	return &TryExpr{Body: body, Cases: cases, Loc: locOf(tok)}, nil
}

func (p *Parser) parseCases() ([]*MatchCase, error) {
	p.accept(BAR) // optional leading bar
	var cases []*MatchCase
	for {
		c, err := p.parseCase()
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
		if !p.accept(BAR) {
			return cases, nil
		}
	}
}

func (p *Parser) parseCase() (*MatchCase, error) {
	loc := p.loc()
	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	c := &MatchCase{Pattern: pat, Loc: loc}
	if p.accept(WHEN) {
		guard, err := p.parseExprNoSeq()
		if err != nil {
			return nil, err
		}
		c.Guard = guard
	}
	if _, err := p.expect(ARROW, "'->'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	c.Body = body
	return c, nil
}

func (p *Parser) parseFun() (Node, error) {
	tok := p.next() // fun
	var params []Pattern
	for !p.check(ARROW) && !p.check(EOF) {
		param, err := p.parsePatternAtom()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}
	if len(params) == 0 {
		return nil, p.unexpected("a parameter")
	}
	if _, err := p.expect(ARROW, "'->'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &FunExpr{Params: params, Body: body, Loc: locOf(tok)}, nil
}

// parseFunction desugars `function cases` to
// `fun __arg -> match __arg with cases`.
func (p *Parser) parseFunction() (Node, error) {
	tok := p.next() // function
	cases, err := p.parseCases()
	if err != nil {
		return nil, err
	}
	loc := locOf(tok)
	return &FunExpr{
		Params: []Pattern{&PVar{Name: "__arg", Loc: loc}},
		Body:   &MatchExpr{Scrutinee: &Symbol{Name: "__arg", Loc: loc}, Cases: cases, Loc: loc},
		Loc:    loc,
	}, nil
}

func (p *Parser) parseFor() (Node, error) {
	tok := p.next() // for
	name, err := p.expect(IDENT, "a loop variable")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EQ, "'='"); err != nil {
		return nil, err
	}
	from, err := p.parseExprNoSeq()
	if err != nil {
		return nil, err
	}
	down := false
	switch {
	case p.accept(TO):
	case p.accept(DOWNTO):
		down = true
	default:
		return nil, p.unexpected("'to' or 'downto'")
	}
	to, err := p.parseExprNoSeq()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(DO, "'do'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(DONE, "'done'"); err != nil {
		return nil, err
	}
	return &ForLoop{Var: name.Lexeme, From: from, To: to, Down: down, Body: body, Loc: locOf(tok)}, nil
}

func (p *Parser) parseWhile() (Node, error) {
	tok := p.next() // while
	cond, err := p.parseExprNoSeq()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(DO, "'do'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(DONE, "'done'"); err != nil {
		return nil, err
	}
	return &WhileLoop{Cond: cond, Body: body, Loc: locOf(tok)}, nil
}

// parseAssign handles `:=` and `e.(i) <- v`, the loosest operator forms.
func (p *Parser) parseAssign() (Node, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	switch {
	case p.check(ASSIGN):
		tok := p.next()
		value, err := p.parseExprNoSeq()
		if err != nil {
			return nil, err
		}
		return &RefAssign{Target: left, Value: value, Loc: locOf(tok)}, nil
	case p.check(LARROW):
		get, ok := left.(*ArrayGet)
		if !ok {
			return nil, p.unexpected("an array element on the left of '<-'")
		}
		tok := p.next()
		value, err := p.parseExprNoSeq()
		if err != nil {
			return nil, err
		}
		return &ArraySet{Array: get.Array, Index: get.Index, Value: value, Loc: locOf(tok)}, nil
	default:
		return left, nil
	}
}

func (p *Parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(BARBAR) {
		tok := p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Binop{Op: "||", Left: left, Right: right, Loc: locOf(tok)}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.check(AMPAMP) {
		tok := p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &Binop{Op: "&&", Left: left, Right: right, Loc: locOf(tok)}
	}
	return left, nil
}

func (p *Parser) parseNot() (Node, error) {
	if p.check(NOT) {
		tok := p.next()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Unop{Op: "not", Operand: operand, Loc: locOf(tok)}, nil
	}
	return p.parseCompare()
}

var compareOps = map[TokenType]string{
	EQ:     "=",
	NEQ:    "<>",
	LT:     "<",
	GT:     ">",
	LE:     "<=",
	GE:     ">=",
	EQEQ:   "==",
	BANGEQ: "!=",
}

func (p *Parser) parseCompare() (Node, error) {
	left, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := compareOps[p.peek().Type]
		if !ok {
			return left, nil
		}
		tok := p.next()
		right, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		left = &Binop{Op: op, Left: left, Right: right, Loc: locOf(tok)}
	}
}

func (p *Parser) parsePipe() (Node, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for p.check(PIPERIGHT) {
		tok := p.next()
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		left = &Apply{Fn: right, Arg: left, Loc: locOf(tok)}
	}
	return left, nil
}

func (p *Parser) parseConcat() (Node, error) {
	left, err := p.parseCons()
	if err != nil {
		return nil, err
	}
	for p.check(AT) || p.check(CARET) {
		tok := p.next()
		right, err := p.parseCons()
		if err != nil {
			return nil, err
		}
		left = &Binop{Op: tok.Lexeme, Left: left, Right: right, Loc: locOf(tok)}
	}
	return left, nil
}

func (p *Parser) parseCons() (Node, error) {
	head, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if !p.check(CONS) {
		return head, nil
	}
	tok := p.next()
	tail, err := p.parseCons() // right-assoc
	if err != nil {
		return nil, err
	}
	return &Cons{Head: head, Tail: tail, Loc: locOf(tok)}, nil
}

func (p *Parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.check(PLUS) || p.check(MINUS) || p.check(PLUSDOT) || p.check(MINUSDOT) {
		tok := p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &Binop{Op: tok.Lexeme, Left: left, Right: right, Loc: locOf(tok)}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(STAR) || p.check(SLASH) || p.check(MOD) || p.check(STARDOT) || p.check(SLASHDOT) {
		tok := p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binop{Op: tok.Lexeme, Left: left, Right: right, Loc: locOf(tok)}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Node, error) {
	switch p.peek().Type {
	case MINUS, MINUSDOT:
		tok := p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unop{Op: tok.Lexeme, Operand: operand, Loc: locOf(tok)}, nil
	case BANG:
		tok := p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Deref{Expr: operand, Loc: locOf(tok)}, nil
	case REF:
		tok := p.next()
		operand, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return &RefNew{Expr: operand, Loc: locOf(tok)}, nil
	default:
		return p.parseApply()
	}
}

// atomStart reports whether tt can begin an application argument.
func atomStart(tt TokenType) bool {
	switch tt {
	case INT, FLOAT, STRING, CHAR, TRUE, FALSE, IDENT, UIDENT, LPAREN, LBRACKET, LARRAY, LBRACE, BEGIN, BANG:
		return true
	}
	return false
}

func (p *Parser) parseApply() (Node, error) {
	fn, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	var args []Node
	for atomStart(p.peek().Type) {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if len(args) == 0 {
		return fn, nil
	}
	// Printf.printf with a literal format string becomes a dedicated node.
	if sym, ok := fn.(*Symbol); ok && sym.Name == "Printf.printf" {
		format, ok := args[0].(*StringLit)
		if !ok {
			return nil, syntaxErrorf(sym.Loc.Line, sym.Loc.Column, "Printf.printf requires a literal format string")
		}
		return &PrintfExpr{Format: format.Value, Args: args[1:], Loc: sym.Loc}, nil
	}
	for _, arg := range args {
		fn = &Apply{Fn: fn, Arg: arg, Loc: fn.GetSourceLocation()}
	}
	return fn, nil
}

// parseArg parses one application argument; `!` binds tighter than
// application when prefixing an argument.
func (p *Parser) parseArg() (Node, error) {
	if p.check(BANG) {
		tok := p.next()
		operand, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		return &Deref{Expr: operand, Loc: locOf(tok)}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses an atom followed by field access and array indexing.
func (p *Parser) parsePostfix() (Node, error) {
	e, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.check(DOT) {
		switch p.peekAt(1).Type {
		case LPAREN:
			tok := p.next() // .
			p.next()        // (
			index, err := p.parseExprNoSeq()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RPAREN, "')'"); err != nil {
				return nil, err
			}
			e = &ArrayGet{Array: e, Index: index, Loc: locOf(tok)}
		case IDENT:
			tok := p.next() // .
			field := p.next()
			e = &FieldAccess{Expr: e, Field: field.Lexeme, Loc: locOf(tok)}
		default:
			return e, nil
		}
	}
	return e, nil
}

func (p *Parser) parseAtom() (Node, error) {
	tok := p.peek()
	switch tok.Type {
	case INT:
		p.next()
		n, err := strconv.Atoi(strings.ReplaceAll(tok.Lexeme, "_", ""))
		if err != nil {
			return nil, syntaxErrorf(tok.Line, tok.Col, "invalid integer literal %q: %s",
				tok.Lexeme, errors.Cause(err))
		}
		return &IntLit{Value: n, Loc: locOf(tok)}, nil
	case FLOAT:
		p.next()
		f, err := strconv.ParseFloat(strings.ReplaceAll(tok.Lexeme, "_", ""), 64)
		if err != nil {
			return nil, syntaxErrorf(tok.Line, tok.Col, "invalid float literal %q: %s",
				tok.Lexeme, errors.Cause(err))
		}
		return &FloatLit{Value: f, Loc: locOf(tok)}, nil
	case STRING:
		p.next()
		return &StringLit{Value: tok.Lexeme, Loc: locOf(tok)}, nil
	case CHAR:
		p.next()
		return &CharLit{Value: []rune(tok.Lexeme)[0], Loc: locOf(tok)}, nil
	case TRUE, FALSE:
		p.next()
		return &BoolLit{Value: tok.Type == TRUE, Loc: locOf(tok)}, nil
	case IDENT:
		p.next()
		return &Symbol{Name: tok.Lexeme, Loc: locOf(tok)}, nil
	case UIDENT:
		p.next()
		if p.check(DOT) && p.peekAt(1).Type == IDENT {
			p.next()
			member := p.next()
			return &Symbol{Name: tok.Lexeme + "." + member.Lexeme, Loc: locOf(tok)}, nil
		}
		return &ConstructorRef{Name: tok.Lexeme, Loc: locOf(tok)}, nil
	case LPAREN:
		p.next()
		if p.accept(RPAREN) {
			return &UnitLit{Loc: locOf(tok)}, nil
		}
		return p.parseParenContent(tok)
	case BEGIN:
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(END, "'end'"); err != nil {
			return nil, err
		}
		return e, nil
	case LBRACKET:
		return p.parseListLit()
	case LARRAY:
		return p.parseArrayLit()
	case LBRACE:
		return p.parseRecordLit()
	default:
		return nil, p.unexpected("an expression")
	}
}

// parseParenContent parses the interior of a parenthesized expression,
// which may be a tuple or a sequence.
func (p *Parser) parseParenContent(open Token) (Node, error) {
	first, err := p.parseExprNoSeq()
	if err != nil {
		return nil, err
	}
	switch {
	case p.check(COMMA):
		items := []Node{first}
		for p.accept(COMMA) {
			item, err := p.parseExprNoSeq()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if _, err := p.expect(RPAREN, "')'"); err != nil {
			return nil, err
		}
		return &TupleLit{Items: items, Loc: locOf(open)}, nil
	case p.check(SEMI):
		exprs := []Node{first}
		for p.accept(SEMI) {
			e, err := p.parseExprNoSeq()
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, e)
		}
		if _, err := p.expect(RPAREN, "')'"); err != nil {
			return nil, err
		}
		return &Sequence{Exprs: exprs, Loc: locOf(open)}, nil
	default:
		if _, err := p.expect(RPAREN, "')'"); err != nil {
			return nil, err
		}
		return first, nil
	}
}

func (p *Parser) parseListLit() (Node, error) {
	open := p.next() // [
	lit := &ListLit{Loc: locOf(open)}
	if p.accept(RBRACKET) {
		return lit, nil
	}
	for {
		e, err := p.parseExprNoSeq()
		if err != nil {
			return nil, err
		}
		lit.Elements = append(lit.Elements, e)
		if !p.accept(SEMI) {
			break
		}
		if p.check(RBRACKET) { // trailing separator
			break
		}
	}
	if _, err := p.expect(RBRACKET, "']'"); err != nil {
		return nil, err
	}
	return lit, nil
}

func (p *Parser) parseArrayLit() (Node, error) {
	open := p.next() // [|
	lit := &ArrayLit{Loc: locOf(open)}
	if p.accept(RARRAY) {
		return lit, nil
	}
	for {
		e, err := p.parseExprNoSeq()
		if err != nil {
			return nil, err
		}
		lit.Elements = append(lit.Elements, e)
		if !p.accept(SEMI) {
			break
		}
		if p.check(RARRAY) {
			break
		}
	}
	if _, err := p.expect(RARRAY, "'|]'"); err != nil {
		return nil, err
	}
	return lit, nil
}

func (p *Parser) parseRecordLit() (Node, error) {
	open := p.next() // {
	lit := &RecordLit{Loc: locOf(open)}
	for {
		name, err := p.expect(IDENT, "a field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(EQ, "'='"); err != nil {
			return nil, err
		}
		value, err := p.parseExprNoSeq()
		if err != nil {
			return nil, err
		}
		lit.Fields = append(lit.Fields, RecordField{Name: name.Lexeme, Value: value})
		if !p.accept(SEMI) {
			break
		}
		if p.check(RBRACE) {
			break
		}
	}
	if _, err := p.expect(RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return lit, nil
}

// --- patterns ---

// parsePattern parses a pattern including top-level or-alternatives.
// Within a case, `|` before `->`/`when` reads as an or-pattern; `|` after
// a case body starts the next case.
func (p *Parser) parsePattern() (Pattern, error) {
	left, err := p.parseConsPattern()
	if err != nil {
		return nil, err
	}
	for p.check(BAR) {
		tok := p.next()
		right, err := p.parseConsPattern()
		if err != nil {
			return nil, err
		}
		left = &POr{Left: left, Right: right, Loc: locOf(tok)}
	}
	return left, nil
}

func (p *Parser) parseConsPattern() (Pattern, error) {
	head, err := p.parsePatternAtom()
	if err != nil {
		return nil, err
	}
	if !p.check(CONS) {
		return head, nil
	}
	tok := p.next()
	tail, err := p.parseConsPattern()
	if err != nil {
		return nil, err
	}
	return &PCons{Head: head, Tail: tail, Loc: locOf(tok)}, nil
}

func patternStart(tt TokenType) bool {
	switch tt {
	case UNDERSCORE, IDENT, UIDENT, INT, FLOAT, STRING, CHAR, TRUE, FALSE, LPAREN, LBRACKET:
		return true
	}
	return false
}

func (p *Parser) parsePatternAtom() (Pattern, error) {
	tok := p.peek()
	switch tok.Type {
	case UNDERSCORE:
		p.next()
		return &PWildcard{Loc: locOf(tok)}, nil
	case IDENT:
		p.next()
		return &PVar{Name: tok.Lexeme, Loc: locOf(tok)}, nil
	case INT:
		p.next()
		n, err := strconv.Atoi(strings.ReplaceAll(tok.Lexeme, "_", ""))
		if err != nil {
			return nil, syntaxErrorf(tok.Line, tok.Col, "invalid integer literal %q", tok.Lexeme)
		}
		return &PConst{Value: IntValue{Val: n}, Loc: locOf(tok)}, nil
	case FLOAT:
		p.next()
		f, err := strconv.ParseFloat(strings.ReplaceAll(tok.Lexeme, "_", ""), 64)
		if err != nil {
			return nil, syntaxErrorf(tok.Line, tok.Col, "invalid float literal %q", tok.Lexeme)
		}
		return &PConst{Value: FloatValue{Val: f}, Loc: locOf(tok)}, nil
	case STRING:
		p.next()
		return &PConst{Value: StringValue{Val: tok.Lexeme}, Loc: locOf(tok)}, nil
	case CHAR:
		p.next()
		return &PConst{Value: CharValue{Val: []rune(tok.Lexeme)[0]}, Loc: locOf(tok)}, nil
	case TRUE, FALSE:
		p.next()
		return &PConst{Value: BoolValue{Val: tok.Type == TRUE}, Loc: locOf(tok)}, nil
	case UIDENT:
		p.next()
		pc := &PConstructor{Name: tok.Lexeme, Loc: locOf(tok)}
		if patternStart(p.peek().Type) {
			arg, err := p.parsePatternAtom()
			if err != nil {
				return nil, err
			}
			pc.Arg = arg
		}
		return pc, nil
	case LPAREN:
		p.next()
		if p.accept(RPAREN) {
			return &PUnit{Loc: locOf(tok)}, nil
		}
		first, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if p.check(COMMA) {
			items := []Pattern{first}
			for p.accept(COMMA) {
				item, err := p.parsePattern()
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			if _, err := p.expect(RPAREN, "')'"); err != nil {
				return nil, err
			}
			return &PTuple{Items: items, Loc: locOf(tok)}, nil
		}
		if _, err := p.expect(RPAREN, "')'"); err != nil {
			return nil, err
		}
		return first, nil
	case LBRACKET:
		p.next()
		pl := &PList{Loc: locOf(tok)}
		if p.accept(RBRACKET) {
			return pl, nil
		}
		for {
			item, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			pl.Items = append(pl.Items, item)
			if !p.accept(SEMI) {
				break
			}
		}
		if _, err := p.expect(RBRACKET, "']'"); err != nil {
			return nil, err
		}
		return pl, nil
	default:
		return nil, p.unexpected("a pattern")
	}
}
