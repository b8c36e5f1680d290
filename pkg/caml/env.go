package caml

// Frame is one scope in the lexical environment chain: an
// insertion-ordered name→Value mapping with an optional parent. Closures
// share (not copy) the frame active at their creation. A frame's bindings
// are only ever written through its own Define; ancestors are read-only
// from a child's perspective.
type Frame struct {
	parent *Frame
	names  []string
	vars   map[string]Value

	// call metadata, set on frames created for function application and
	// used by the memory snapshot
	fnName   string
	callLine int
}

func NewFrame(parent *Frame) *Frame {
	return &Frame{parent: parent, vars: make(map[string]Value)}
}

// Define binds name in this frame, shadowing any ancestor binding.
// Rebinding an existing local name keeps its original insertion position.
func (f *Frame) Define(name string, v Value) {
	if _, ok := f.vars[name]; !ok {
		f.names = append(f.names, name)
	}
	f.vars[name] = v
}

// Get resolves name by walking the chain outward to the global frame.
func (f *Frame) Get(name string) (Value, bool) {
	for fr := f; fr != nil; fr = fr.parent {
		if v, ok := fr.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// GetLocal resolves name in this frame only.
func (f *Frame) GetLocal(name string) (Value, bool) {
	v, ok := f.vars[name]
	return v, ok
}

// Bindings visits this frame's own bindings in insertion order.
func (f *Frame) Bindings(fn func(name string, v Value)) {
	for _, name := range f.names {
		fn(name, f.vars[name])
	}
}
