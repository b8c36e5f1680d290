package caml

import (
	"fmt"
	"strconv"
	"strings"
)

// maxRenderDepth caps value rendering recursion; deeper structure renders
// as `...`.
const maxRenderDepth = 10

// FormatValue renders a value the way the toplevel reports it. The same
// rendering is used in error and exception messages.
func FormatValue(v Value) string {
	return formatDepth(v, 0)
}

func formatDepth(v Value, depth int) string {
	if depth > maxRenderDepth {
		return "..."
	}
	switch val := v.(type) {
	case IntValue:
		return strconv.Itoa(val.Val)
	case FloatValue:
		return formatFloat(val.Val)
	case StringValue:
		return quoteString(val.Val)
	case CharValue:
		return "'" + escapeChar(val.Val) + "'"
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case UnitValue:
		return "()"
	case ListValue:
		return "[" + joinValues(val.Items, "; ", depth) + "]"
	case TupleValue:
		return "(" + joinValues(val.Items, ", ", depth) + ")"
	case *ArrayValue:
		return "[|" + joinValues(val.Items, "; ", depth) + "|]"
	case *RefValue:
		return "{contents = " + formatDepth(val.Contents, depth+1) + "}"
	case RecordValue:
		parts := make([]string, len(val.Fields))
		for i, f := range val.Fields {
			parts[i] = f.Name + " = " + formatDepth(f.Value, depth+1)
		}
		return "{" + strings.Join(parts, "; ") + "}"
	case ConstructorValue:
		if val.Arg == nil {
			return val.Name
		}
		arg := formatDepth(val.Arg, depth+1)
		if needsParens(val.Arg) {
			return val.Name + " (" + arg + ")"
		}
		return val.Name + " " + arg
	case *ClosureValue, *BuiltinValue:
		return "<fun>"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func joinValues(items []Value, sep string, depth int) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = formatDepth(item, depth+1)
	}
	return strings.Join(parts, sep)
}

func needsParens(v Value) bool {
	switch val := v.(type) {
	case ConstructorValue:
		return val.Arg != nil
	case IntValue:
		return val.Val < 0
	case FloatValue:
		return val.Val < 0
	default:
		return false
	}
}

// formatFloat always shows a decimal point, matching the toplevel: 2.0
// renders as "2.".
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".einf") {
		s += "."
	}
	return s
}

func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range s {
		switch c {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func escapeChar(c rune) string {
	switch c {
	case '\\':
		return `\\`
	case '\'':
		return `\'`
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	default:
		return string(c)
	}
}
