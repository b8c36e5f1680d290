package caml

// RefNew allocates a fresh reference cell: `ref e`.
type RefNew struct {
	Expr Node
	Loc  *SourceLocation
}

var _ Node = (*RefNew)(nil)

func (r *RefNew) GetSourceLocation() *SourceLocation { return r.Loc }

// Deref reads a reference cell: `!e`.
type Deref struct {
	Expr Node
	Loc  *SourceLocation
}

var _ Node = (*Deref)(nil)

func (d *Deref) GetSourceLocation() *SourceLocation { return d.Loc }

// RefAssign writes a reference cell: `e := v`.
type RefAssign struct {
	Target Node
	Value  Node
	Loc    *SourceLocation
}

var _ Node = (*RefAssign)(nil)

func (r *RefAssign) GetSourceLocation() *SourceLocation { return r.Loc }

// FieldAccess reads a record field: `e.f`.
type FieldAccess struct {
	Expr  Node
	Field string
	Loc   *SourceLocation
}

var _ Node = (*FieldAccess)(nil)

func (f *FieldAccess) GetSourceLocation() *SourceLocation { return f.Loc }

// ArrayGet indexes an array: `e.(i)`.
type ArrayGet struct {
	Array Node
	Index Node
	Loc   *SourceLocation
}

var _ Node = (*ArrayGet)(nil)

func (a *ArrayGet) GetSourceLocation() *SourceLocation { return a.Loc }

// ArraySet assigns an array slot: `e.(i) <- v`.
type ArraySet struct {
	Array Node
	Index Node
	Value Node
	Loc   *SourceLocation
}

var _ Node = (*ArraySet)(nil)

func (a *ArraySet) GetSourceLocation() *SourceLocation { return a.Loc }

// ForLoop is `for v = from to/downto limit do body done`. Bounds are
// evaluated once, before the first iteration.
type ForLoop struct {
	Var  string
	From Node
	To   Node
	Down bool
	Body Node
	Loc  *SourceLocation
}

var _ Node = (*ForLoop)(nil)

func (f *ForLoop) GetSourceLocation() *SourceLocation { return f.Loc }

type WhileLoop struct {
	Cond Node
	Body Node
	Loc  *SourceLocation
}

var _ Node = (*WhileLoop)(nil)

func (w *WhileLoop) GetSourceLocation() *SourceLocation { return w.Loc }

// PrintfExpr is a recognized `Printf.printf "fmt" args...` call.
type PrintfExpr struct {
	Format string
	Args   []Node
	Loc    *SourceLocation
}

var _ Node = (*PrintfExpr)(nil)

func (p *PrintfExpr) GetSourceLocation() *SourceLocation { return p.Loc }
