package caml

// Node is an AST node produced by the parser. Nodes are read-only after
// parsing and may be shared across multiple evaluations of a closure body.
type Node interface {
	GetSourceLocation() *SourceLocation
}

// Symbol references a value binding by name. Module-qualified access
// (List.map) is folded into the name at parse time.
type Symbol struct {
	Name string
	Loc  *SourceLocation
}

var _ Node = (*Symbol)(nil)

func (s *Symbol) GetSourceLocation() *SourceLocation { return s.Loc }

// ConstructorRef references a variant constructor (Some, None, a declared
// constructor, or a declared exception).
type ConstructorRef struct {
	Name string
	Loc  *SourceLocation
}

var _ Node = (*ConstructorRef)(nil)

func (c *ConstructorRef) GetSourceLocation() *SourceLocation { return c.Loc }

// LetBinding is one binding of a let/let rec group. Either Name with
// optional curried Params, or a destructuring Pattern.
type LetBinding struct {
	Name    string
	Pattern Pattern // set instead of Name for `let (a, b) = ...`
	Params  []Pattern
	Expr    Node
	Loc     *SourceLocation
}

// Let is a let/let rec expression or top-level definition. Body is nil for
// a top-level definition phrase.
type Let struct {
	Rec      bool
	Bindings []*LetBinding
	Body     Node
	Loc      *SourceLocation
}

var _ Node = (*Let)(nil)

func (l *Let) GetSourceLocation() *SourceLocation { return l.Loc }

// FunExpr is a function literal. Parameters are stored uncurried; currying
// happens one argument at a time at application sites.
type FunExpr struct {
	Params []Pattern
	Body   Node
	Loc    *SourceLocation
}

var _ Node = (*FunExpr)(nil)

func (f *FunExpr) GetSourceLocation() *SourceLocation { return f.Loc }

// Apply applies a function to a single argument. Multi-argument calls are
// left-nested Apply chains.
type Apply struct {
	Fn  Node
	Arg Node
	Loc *SourceLocation
}

var _ Node = (*Apply)(nil)

func (a *Apply) GetSourceLocation() *SourceLocation { return a.Loc }

type Binop struct {
	Op    string
	Left  Node
	Right Node
	Loc   *SourceLocation
}

var _ Node = (*Binop)(nil)

func (b *Binop) GetSourceLocation() *SourceLocation { return b.Loc }

type Unop struct {
	Op      string
	Operand Node
	Loc     *SourceLocation
}

var _ Node = (*Unop)(nil)

func (u *Unop) GetSourceLocation() *SourceLocation { return u.Loc }

// If is a conditional; Else may be nil, in which case the expression
// evaluates to unit when the condition is false.
type If struct {
	Cond Node
	Then Node
	Else Node
	Loc  *SourceLocation
}

var _ Node = (*If)(nil)

func (i *If) GetSourceLocation() *SourceLocation { return i.Loc }

// MatchCase is one `| pattern when guard -> body` arm of a match or
// try/with expression. Guard may be nil.
type MatchCase struct {
	Pattern Pattern
	Guard   Node
	Body    Node
	Loc     *SourceLocation
}

type MatchExpr struct {
	Scrutinee Node
	Cases     []*MatchCase
	Loc       *SourceLocation
}

var _ Node = (*MatchExpr)(nil)

func (m *MatchExpr) GetSourceLocation() *SourceLocation { return m.Loc }

// TryExpr evaluates Body and, if a user exception propagates out of it,
// matches the exception payload against Cases.
type TryExpr struct {
	Body  Node
	Cases []*MatchCase
	Loc   *SourceLocation
}

var _ Node = (*TryExpr)(nil)

func (t *TryExpr) GetSourceLocation() *SourceLocation { return t.Loc }

// Sequence evaluates expressions in order, discarding all results but the
// last.
type Sequence struct {
	Exprs []Node
	Loc   *SourceLocation
}

var _ Node = (*Sequence)(nil)

func (s *Sequence) GetSourceLocation() *SourceLocation { return s.Loc }

// Cons prepends an element to a list: `h :: t`.
type Cons struct {
	Head Node
	Tail Node
	Loc  *SourceLocation
}

var _ Node = (*Cons)(nil)

func (c *Cons) GetSourceLocation() *SourceLocation { return c.Loc }

type Raise struct {
	Expr Node
	Loc  *SourceLocation
}

var _ Node = (*Raise)(nil)

func (r *Raise) GetSourceLocation() *SourceLocation { return r.Loc }
