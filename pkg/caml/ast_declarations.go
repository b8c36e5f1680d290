package caml

// VariantCase is one constructor of a variant type declaration. ArgType is
// the rendered payload type, empty for nullary constructors.
type VariantCase struct {
	Name    string
	ArgType string
}

// FieldDecl is one field of a record type declaration. The type expression
// is recorded for display only.
type FieldDecl struct {
	Name    string
	Type    string
	Mutable bool
}

// TypeDecl declares a variant, record, or alias type. Type parameters are
// recorded but not semantically enforced.
type TypeDecl struct {
	Name     string
	Params   []string
	Variants []VariantCase
	Fields   []FieldDecl
	Alias    string
	Loc      *SourceLocation
}

var _ Node = (*TypeDecl)(nil)

func (t *TypeDecl) GetSourceLocation() *SourceLocation { return t.Loc }

// ExceptionDecl declares an exception constructor, with an optional
// payload type.
type ExceptionDecl struct {
	Name    string
	ArgType string
	Loc     *SourceLocation
}

var _ Node = (*ExceptionDecl)(nil)

func (e *ExceptionDecl) GetSourceLocation() *SourceLocation { return e.Loc }

// OpenDecl brings a module's bindings into unqualified scope.
type OpenDecl struct {
	Module string
	Loc    *SourceLocation
}

var _ Node = (*OpenDecl)(nil)

func (o *OpenDecl) GetSourceLocation() *SourceLocation { return o.Loc }
