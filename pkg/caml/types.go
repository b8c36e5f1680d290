package caml

import "strings"

// ctorInfo describes a known variant or exception constructor.
type ctorInfo struct {
	typeName string
	hasArg   bool
	argType  string
}

// recordInfo remembers a declared record type's field names so records can
// be displayed with their declared type.
type recordInfo struct {
	name   string
	fields []string
}

// builtinConstructors are pre-bound at the start of every run.
var builtinConstructors = map[string]ctorInfo{
	"Some":             {typeName: "option", hasArg: true},
	"None":             {typeName: "option"},
	"Failure":          {typeName: "exn", hasArg: true, argType: "string"},
	"Invalid_argument": {typeName: "exn", hasArg: true, argType: "string"},
	"Not_found":        {typeName: "exn"},
	"Exit":             {typeName: "exn"},
}

// typeOf loosely infers a display type from a runtime value. Types are
// computed after evaluation, for reporting only.
func (in *Interp) typeOf(v Value) string {
	switch val := v.(type) {
	case IntValue:
		return "int"
	case FloatValue:
		return "float"
	case StringValue:
		return "string"
	case CharValue:
		return "char"
	case BoolValue:
		return "bool"
	case UnitValue:
		return "unit"
	case ListValue:
		if len(val.Items) == 0 {
			return "'a list"
		}
		return elemType(in.typeOf(val.Items[0])) + " list"
	case *ArrayValue:
		if len(val.Items) == 0 {
			return "'a array"
		}
		return elemType(in.typeOf(val.Items[0])) + " array"
	case TupleValue:
		parts := make([]string, len(val.Items))
		for i, item := range val.Items {
			parts[i] = in.typeOf(item)
		}
		return strings.Join(parts, " * ")
	case *RefValue:
		return elemType(in.typeOf(val.Contents)) + " ref"
	case *ClosureValue, *BuiltinValue:
		return "'a -> 'b"
	case ConstructorValue:
		return in.constructorType(val)
	case RecordValue:
		if name := in.recordTypeName(val); name != "" {
			return name
		}
		return "record"
	default:
		return "?"
	}
}

func (in *Interp) constructorType(v ConstructorValue) string {
	info, ok := in.constructors[v.Name]
	if !ok {
		return "variant"
	}
	if info.typeName == "option" {
		if v.Arg == nil {
			return "'a option"
		}
		return elemType(in.typeOf(v.Arg)) + " option"
	}
	return info.typeName
}

func (in *Interp) recordTypeName(v RecordValue) string {
	for _, rec := range in.recordTypes {
		if len(rec.fields) != len(v.Fields) {
			continue
		}
		match := true
		for i, f := range rec.fields {
			if v.Fields[i].Name != f {
				match = false
				break
			}
		}
		if match {
			return rec.name
		}
	}
	return ""
}

// elemType parenthesizes compound element types so `int * int list` reads
// as intended.
func elemType(t string) string {
	if strings.ContainsAny(t, "*>") {
		return "(" + t + ")"
	}
	return t
}
