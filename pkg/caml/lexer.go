package caml

import (
	"fmt"
	"strings"
)

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	EOF TokenType = iota

	// Identifiers and literals
	IDENT  // lowercase-leading identifier
	UIDENT // uppercase-leading constructor or module name
	TYVAR  // 'a
	INT
	FLOAT
	STRING
	CHAR

	// Keywords
	LET
	REC
	IN
	AND
	FUN
	FUNCTION
	IF
	THEN
	ELSE
	MATCH
	WITH
	WHEN
	TYPE
	OF
	BEGIN
	END
	TRUE
	FALSE
	NOT
	MOD
	REF
	TRY
	RAISE
	EXCEPTION
	OPEN
	MODULE
	STRUCT
	SIG
	FOR
	WHILE
	DO
	DONE
	TO
	DOWNTO
	MUTABLE

	// Punctuation
	LPAREN     // (
	RPAREN     // )
	LBRACKET   // [
	RBRACKET   // ]
	LARRAY     // [|
	RARRAY     // |]
	LBRACE     // {
	RBRACE     // }
	SEMI       // ;
	SEMISEMI   // ;;
	COMMA      // ,
	DOT        // .
	COLON      // :
	BAR        // |
	ARROW      // ->
	LARROW     // <-
	UNDERSCORE // _

	// Operators
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PLUSDOT   // +.
	MINUSDOT  // -.
	STARDOT   // *.
	SLASHDOT  // /.
	EQ        // =
	NEQ       // <>
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	EQEQ      // ==
	BANGEQ    // !=
	AMPAMP    // &&
	BARBAR    // ||
	CONS      // ::
	AT        // @
	CARET     // ^
	BANG      // !
	ASSIGN    // :=
	PIPERIGHT // |>
)

// Token is a lexical token tagged with its source position (1-based).
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Col    int
}

func (t Token) String() string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Lexeme)
}

var keywords = map[string]TokenType{
	"let":       LET,
	"rec":       REC,
	"in":        IN,
	"and":       AND,
	"fun":       FUN,
	"function":  FUNCTION,
	"if":        IF,
	"then":      THEN,
	"else":      ELSE,
	"match":     MATCH,
	"with":      WITH,
	"when":      WHEN,
	"type":      TYPE,
	"of":        OF,
	"begin":     BEGIN,
	"end":       END,
	"true":      TRUE,
	"false":     FALSE,
	"not":       NOT,
	"mod":       MOD,
	"ref":       REF,
	"try":       TRY,
	"raise":     RAISE,
	"exception": EXCEPTION,
	"open":      OPEN,
	"module":    MODULE,
	"struct":    STRUCT,
	"sig":       SIG,
	"for":       FOR,
	"while":     WHILE,
	"do":        DO,
	"done":      DONE,
	"to":        TO,
	"downto":    DOWNTO,
	"mutable":   MUTABLE,
}

// operandEnders are token types that can end an operand expression. A `-`
// seen immediately before a digit folds into a negative numeric literal
// unless the previous token is one of these, in which case the parser
// decides between unary and binary minus.
var operandEnders = map[TokenType]bool{
	IDENT:    true,
	UIDENT:   true,
	INT:      true,
	FLOAT:    true,
	STRING:   true,
	CHAR:     true,
	TRUE:     true,
	FALSE:    true,
	RPAREN:   true,
	RBRACKET: true,
	RARRAY:   true,
	RBRACE:   true,
	END:      true,
	DONE:     true,
}

// Lexer scans a source string into a token stream.
type Lexer struct {
	src    string
	pos    int
	line   int
	col    int
	tokens []Token
}

// Lex tokenizes source and returns the token stream, terminated by an EOF
// token. An unrecognized character produces a SyntaxError carrying the
// offending position; no partial stream is returned.
func Lex(source string) ([]Token, error) {
	lx := &Lexer{src: source, line: 1, col: 1}
	if err := lx.run(); err != nil {
		return nil, err
	}
	return lx.tokens, nil
}

func (lx *Lexer) run() error {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			lx.advance(1)
		case c == '\n':
			lx.pos++
			lx.line++
			lx.col = 1
		case c == '(' && lx.peekAt(1) == '*':
			if err := lx.skipComment(); err != nil {
				return err
			}
		case isDigit(c):
			lx.lexNumber(false)
		case c == '-' && isDigit(lx.peekAt(1)) && lx.foldsNegative():
			lx.lexNumber(true)
		case c == '"':
			if err := lx.lexString(); err != nil {
				return err
			}
		case c == '\'':
			if err := lx.lexQuote(); err != nil {
				return err
			}
		case isIdentStart(c):
			lx.lexIdent()
		default:
			if !lx.lexOperator() {
				return syntaxErrorf(lx.line, lx.col, "unexpected character %q", string(c))
			}
		}
	}
	lx.emit(EOF, "")
	return nil
}

func (lx *Lexer) peekAt(off int) byte {
	if lx.pos+off >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+off]
}

func (lx *Lexer) advance(n int) {
	lx.pos += n
	lx.col += n
}

func (lx *Lexer) emit(tt TokenType, lexeme string) {
	lx.tokens = append(lx.tokens, Token{Type: tt, Lexeme: lexeme, Line: lx.line, Col: lx.col - len(lexeme)})
}

// foldsNegative reports whether a `-` at the current position should be
// folded into the following numeric literal, based on the previous token.
func (lx *Lexer) foldsNegative() bool {
	if len(lx.tokens) == 0 {
		return true
	}
	return !operandEnders[lx.tokens[len(lx.tokens)-1].Type]
}

func (lx *Lexer) skipComment() error {
	startLine, startCol := lx.line, lx.col
	lx.advance(2)
	depth := 1
	for lx.pos < len(lx.src) {
		switch {
		case lx.src[lx.pos] == '(' && lx.peekAt(1) == '*':
			depth++
			lx.advance(2)
		case lx.src[lx.pos] == '*' && lx.peekAt(1) == ')':
			depth--
			lx.advance(2)
			if depth == 0 {
				return nil
			}
		case lx.src[lx.pos] == '\n':
			lx.pos++
			lx.line++
			lx.col = 1
		default:
			lx.advance(1)
		}
	}
	return syntaxErrorf(startLine, startCol, "unterminated comment")
}

func (lx *Lexer) lexNumber(negative bool) {
	start := lx.pos
	if negative {
		lx.advance(1)
	}
	isFloat := false
	lx.consumeDigits()
	if lx.pos < len(lx.src) && lx.src[lx.pos] == '.' && !isIdentStart(lx.peekAt(1)) && lx.peekAt(1) != '(' {
		isFloat = true
		lx.advance(1)
		lx.consumeDigits()
	}
	if lx.pos < len(lx.src) && (lx.src[lx.pos] == 'e' || lx.src[lx.pos] == 'E') {
		next := lx.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(lx.peekAt(2))) {
			isFloat = true
			lx.advance(1)
			if lx.src[lx.pos] == '+' || lx.src[lx.pos] == '-' {
				lx.advance(1)
			}
			lx.consumeDigits()
		}
	}
	lexeme := lx.src[start:lx.pos]
	if isFloat {
		lx.emit(FLOAT, lexeme)
	} else {
		lx.emit(INT, lexeme)
	}
}

func (lx *Lexer) consumeDigits() {
	for lx.pos < len(lx.src) && (isDigit(lx.src[lx.pos]) || lx.src[lx.pos] == '_') {
		lx.advance(1)
	}
}

func (lx *Lexer) lexString() error {
	startLine, startCol := lx.line, lx.col
	lx.advance(1)
	var sb strings.Builder
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch c {
		case '"':
			lx.advance(1)
			lx.tokens = append(lx.tokens, Token{Type: STRING, Lexeme: sb.String(), Line: startLine, Col: startCol})
			return nil
		case '\\':
			esc, err := lx.unescape()
			if err != nil {
				return err
			}
			sb.WriteByte(esc)
		case '\n':
			sb.WriteByte(c)
			lx.pos++
			lx.line++
			lx.col = 1
		default:
			sb.WriteByte(c)
			lx.advance(1)
		}
	}
	return syntaxErrorf(startLine, startCol, "unterminated string literal")
}

func (lx *Lexer) unescape() (byte, error) {
	if lx.pos+1 >= len(lx.src) {
		return 0, syntaxErrorf(lx.line, lx.col, "unterminated escape sequence")
	}
	c := lx.src[lx.pos+1]
	lx.advance(2)
	switch c {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '\\':
		return '\\', nil
	case '"':
		return '"', nil
	case '\'':
		return '\'', nil
	default:
		return 0, syntaxErrorf(lx.line, lx.col-2, "invalid escape sequence \\%s", string(c))
	}
}

// lexQuote disambiguates char literals from type variables: 'a' is a char,
// 'a (with no closing quote) is a type variable.
func (lx *Lexer) lexQuote() error {
	startLine, startCol := lx.line, lx.col
	if lx.peekAt(1) == '\\' {
		lx.advance(1)
		esc, err := lx.unescape()
		if err != nil {
			return err
		}
		if lx.pos >= len(lx.src) || lx.src[lx.pos] != '\'' {
			return syntaxErrorf(startLine, startCol, "unterminated character literal")
		}
		lx.advance(1)
		lx.tokens = append(lx.tokens, Token{Type: CHAR, Lexeme: string(esc), Line: startLine, Col: startCol})
		return nil
	}
	if lx.peekAt(1) != 0 && lx.peekAt(2) == '\'' {
		c := lx.peekAt(1)
		lx.advance(3)
		lx.tokens = append(lx.tokens, Token{Type: CHAR, Lexeme: string(c), Line: startLine, Col: startCol})
		return nil
	}
	if isIdentStart(lx.peekAt(1)) {
		start := lx.pos
		lx.advance(1)
		for lx.pos < len(lx.src) && isIdentChar(lx.src[lx.pos]) {
			lx.advance(1)
		}
		lx.tokens = append(lx.tokens, Token{Type: TYVAR, Lexeme: lx.src[start:lx.pos], Line: startLine, Col: startCol})
		return nil
	}
	return syntaxErrorf(startLine, startCol, "unterminated character literal")
}

func (lx *Lexer) lexIdent() {
	start := lx.pos
	startCol := lx.col
	for lx.pos < len(lx.src) && isIdentChar(lx.src[lx.pos]) {
		lx.advance(1)
	}
	lexeme := lx.src[start:lx.pos]
	tok := Token{Lexeme: lexeme, Line: lx.line, Col: startCol}
	switch {
	case lexeme == "_":
		tok.Type = UNDERSCORE
	case keywords[lexeme] != 0:
		tok.Type = keywords[lexeme]
	case lexeme[0] >= 'A' && lexeme[0] <= 'Z':
		tok.Type = UIDENT
	default:
		tok.Type = IDENT
	}
	lx.tokens = append(lx.tokens, tok)
}

// multi-byte operators first so e.g. `->` never lexes as `-` `>`.
var operators = []struct {
	text string
	tt   TokenType
}{
	{"[|", LARRAY},
	{"|]", RARRAY},
	{";;", SEMISEMI},
	{"->", ARROW},
	{"<-", LARROW},
	{":=", ASSIGN},
	{"::", CONS},
	{"|>", PIPERIGHT},
	{"||", BARBAR},
	{"&&", AMPAMP},
	{"<>", NEQ},
	{"<=", LE},
	{">=", GE},
	{"==", EQEQ},
	{"!=", BANGEQ},
	{"+.", PLUSDOT},
	{"-.", MINUSDOT},
	{"*.", STARDOT},
	{"/.", SLASHDOT},
	{"(", LPAREN},
	{")", RPAREN},
	{"[", LBRACKET},
	{"]", RBRACKET},
	{"{", LBRACE},
	{"}", RBRACE},
	{";", SEMI},
	{",", COMMA},
	{".", DOT},
	{":", COLON},
	{"|", BAR},
	{"=", EQ},
	{"<", LT},
	{">", GT},
	{"+", PLUS},
	{"-", MINUS},
	{"*", STAR},
	{"/", SLASH},
	{"@", AT},
	{"^", CARET},
	{"!", BANG},
}

func (lx *Lexer) lexOperator() bool {
	for _, op := range operators {
		if strings.HasPrefix(lx.src[lx.pos:], op.text) {
			lx.advance(len(op.text))
			lx.tokens = append(lx.tokens, Token{Type: op.tt, Lexeme: op.text, Line: lx.line, Col: lx.col - len(op.text)})
			return true
		}
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '\''
}
