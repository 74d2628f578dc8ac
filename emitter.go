package discogen

// An Emitter is a discogen code generator.
//
// Each Emitter works with exactly one type of input, indicated by its type
// parameter. discogen names these type parameters "Input" as a signal to
// humans that a type parameter is used this way.
//
// Each Emitter takes one Input and produces zero, one, or many artifacts.
// Keeping emitters narrow (one manifest, one source file) and composing them
// in a [Pipeline] is how a complete project tree is assembled.
//
// Go's generics cannot express the union of emitter kinds inside this
// interface, so every Emitter must additionally implement [OneToOne] or
// [OneToMany].
type Emitter[Input any] interface {
	// EmitterName returns the name of the emitter.
	EmitterName() string
}

// NamedEmitter is the non-generic part of Emitter, used to record where an
// artifact came from.
type NamedEmitter interface {
	EmitterName() string
}

// OneToOne is an Emitter that produces at most one Artifact per Input.
type OneToOne[Input any] interface {
	Emitter[Input]

	// Generate takes an Input and generates one Artifact, or nil (or the zero
	// Artifact) if the emitter was a no-op for the provided Input.
	Generate(Input) (*Artifact, error)
}

// OneToMany is an Emitter that produces any number of artifacts per Input.
type OneToMany[Input any] interface {
	Emitter[Input]

	// Generate takes an Input and generates many artifacts, or nil if the
	// emitter was a no-op for the provided Input.
	Generate(Input) (Artifacts, error)
}

type o2oFunc[Input any] struct {
	name string
	fn   func(Input) (*Artifact, error)
}

func (f *o2oFunc[Input]) EmitterName() string { return f.name }
func (f *o2oFunc[Input]) Generate(in Input) (*Artifact, error) { return f.fn(in) }

// OneToOneFunc makes a named OneToOne emitter from a function.
func OneToOneFunc[Input any](name string, fn func(Input) (*Artifact, error)) OneToOne[Input] {
	return &o2oFunc[Input]{name: name, fn: fn}
}

type o2mFunc[Input any] struct {
	name string
	fn   func(Input) (Artifacts, error)
}

func (f *o2mFunc[Input]) EmitterName() string { return f.name }
func (f *o2mFunc[Input]) Generate(in Input) (Artifacts, error) { return f.fn(in) }

// OneToManyFunc makes a named OneToMany emitter from a function.
func OneToManyFunc[Input any](name string, fn func(Input) (Artifacts, error)) OneToMany[Input] {
	return &o2mFunc[Input]{name: name, fn: fn}
}
