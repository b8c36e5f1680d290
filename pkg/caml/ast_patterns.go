package caml

// Pattern is a structural pattern. Testing a pattern is side-effect-free;
// variable bindings are committed only when the whole pattern matches.
type Pattern interface {
	GetSourceLocation() *SourceLocation
}

type PWildcard struct {
	Loc *SourceLocation
}

var _ Pattern = (*PWildcard)(nil)

func (p *PWildcard) GetSourceLocation() *SourceLocation { return p.Loc }

type PVar struct {
	Name string
	Loc  *SourceLocation
}

var _ Pattern = (*PVar)(nil)

func (p *PVar) GetSourceLocation() *SourceLocation { return p.Loc }

// PConst matches a literal by structural equality. The literal is stored
// pre-evaluated since literal patterns cannot contain computation.
type PConst struct {
	Value Value
	Loc   *SourceLocation
}

var _ Pattern = (*PConst)(nil)

func (p *PConst) GetSourceLocation() *SourceLocation { return p.Loc }

type PUnit struct {
	Loc *SourceLocation
}

var _ Pattern = (*PUnit)(nil)

func (p *PUnit) GetSourceLocation() *SourceLocation { return p.Loc }

type PTuple struct {
	Items []Pattern
	Loc   *SourceLocation
}

var _ Pattern = (*PTuple)(nil)

func (p *PTuple) GetSourceLocation() *SourceLocation { return p.Loc }

// PList matches a list of exactly len(Items) elements.
type PList struct {
	Items []Pattern
	Loc   *SourceLocation
}

var _ Pattern = (*PList)(nil)

func (p *PList) GetSourceLocation() *SourceLocation { return p.Loc }

type PCons struct {
	Head Pattern
	Tail Pattern
	Loc  *SourceLocation
}

var _ Pattern = (*PCons)(nil)

func (p *PCons) GetSourceLocation() *SourceLocation { return p.Loc }

// PConstructor matches a constructor by name, with an optional payload
// pattern.
type PConstructor struct {
	Name string
	Arg  Pattern
	Loc  *SourceLocation
}

var _ Pattern = (*PConstructor)(nil)

func (p *PConstructor) GetSourceLocation() *SourceLocation { return p.Loc }

// POr tries Left first; Left's bindings are committed only if it succeeds,
// otherwise Right is tried fresh. Supported at the top level of a case
// only (known grammar limitation).
type POr struct {
	Left  Pattern
	Right Pattern
	Loc   *SourceLocation
}

var _ Pattern = (*POr)(nil)

func (p *POr) GetSourceLocation() *SourceLocation { return p.Loc }
