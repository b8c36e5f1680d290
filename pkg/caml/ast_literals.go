package caml

type IntLit struct {
	Value int
	Loc   *SourceLocation
}

var _ Node = (*IntLit)(nil)

func (l *IntLit) GetSourceLocation() *SourceLocation { return l.Loc }

type FloatLit struct {
	Value float64
	Loc   *SourceLocation
}

var _ Node = (*FloatLit)(nil)

func (l *FloatLit) GetSourceLocation() *SourceLocation { return l.Loc }

type StringLit struct {
	Value string
	Loc   *SourceLocation
}

var _ Node = (*StringLit)(nil)

func (l *StringLit) GetSourceLocation() *SourceLocation { return l.Loc }

type CharLit struct {
	Value rune
	Loc   *SourceLocation
}

var _ Node = (*CharLit)(nil)

func (l *CharLit) GetSourceLocation() *SourceLocation { return l.Loc }

type BoolLit struct {
	Value bool
	Loc   *SourceLocation
}

var _ Node = (*BoolLit)(nil)

func (l *BoolLit) GetSourceLocation() *SourceLocation { return l.Loc }

type UnitLit struct {
	Loc *SourceLocation
}

var _ Node = (*UnitLit)(nil)

func (l *UnitLit) GetSourceLocation() *SourceLocation { return l.Loc }

type ListLit struct {
	Elements []Node
	Loc      *SourceLocation
}

var _ Node = (*ListLit)(nil)

func (l *ListLit) GetSourceLocation() *SourceLocation { return l.Loc }

type ArrayLit struct {
	Elements []Node
	Loc      *SourceLocation
}

var _ Node = (*ArrayLit)(nil)

func (l *ArrayLit) GetSourceLocation() *SourceLocation { return l.Loc }

type TupleLit struct {
	Items []Node
	Loc   *SourceLocation
}

var _ Node = (*TupleLit)(nil)

func (l *TupleLit) GetSourceLocation() *SourceLocation { return l.Loc }

type RecordField struct {
	Name  string
	Value Node
}

type RecordLit struct {
	Fields []RecordField
	Loc    *SourceLocation
}

var _ Node = (*RecordLit)(nil)

func (l *RecordLit) GetSourceLocation() *SourceLocation { return l.Loc }
