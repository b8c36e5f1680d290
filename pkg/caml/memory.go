package caml

// Binding is one named slot in a frame, rendered for display.
type Binding struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// StackFrameInfo describes one retained call frame.
type StackFrameInfo struct {
	Name     string    `json:"name"`
	Line     int       `json:"line"`
	Bindings []Binding `json:"bindings"`
}

// HeapObject is a live ref cell or array at snapshot time.
type HeapObject struct {
	ID    int    `json:"id"`
	Kind  string `json:"kind"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// MemoryState is the end-of-run view of the evaluator's memory.
type MemoryState struct {
	Stack           []StackFrameInfo `json:"stack"`
	Heap            []HeapObject     `json:"heap"`
	Environment     []Binding        `json:"environment"`
	TypeDefinitions []string         `json:"typeDefinitions"`
}

// Snapshot renders the current memory state. Heap cells are rendered
// here rather than at allocation so mutations are reflected. Builtins
// are omitted from the environment; user rebindings of a builtin name
// are kept.
func (in *Interp) Snapshot() MemoryState {
	ms := MemoryState{
		Stack:           []StackFrameInfo{},
		Heap:            []HeapObject{},
		Environment:     []Binding{},
		TypeDefinitions: []string{},
	}

	for _, frame := range in.callRing {
		info := StackFrameInfo{
			Name:     frame.fnName,
			Line:     frame.callLine,
			Bindings: []Binding{},
		}
		frame.Bindings(func(name string, v Value) {
			info.Bindings = append(info.Bindings, Binding{
				Name:  name,
				Type:  in.typeOf(v),
				Value: FormatValue(v),
			})
		})
		ms.Stack = append(ms.Stack, info)
	}

	for _, entry := range in.heap {
		obj := HeapObject{ID: entry.id, Kind: entry.kind}
		switch entry.kind {
		case "ref":
			obj.Type = in.typeOf(entry.ref.Contents) + " ref"
			obj.Value = FormatValue(entry.ref.Contents)
		case "array":
			obj.Type = in.typeOf(entry.arr)
			obj.Value = FormatValue(entry.arr)
		}
		ms.Heap = append(ms.Heap, obj)
	}

	in.globals.Bindings(func(name string, v Value) {
		if _, isBuiltin := v.(*BuiltinValue); isBuiltin {
			return
		}
		ms.Environment = append(ms.Environment, Binding{
			Name:  name,
			Type:  in.typeOf(v),
			Value: FormatValue(v),
		})
	})

	ms.TypeDefinitions = append(ms.TypeDefinitions, in.typeSigs...)

	return ms
}
