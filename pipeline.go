package discogen

import (
	"fmt"
	"reflect"
	"sync"
)

// PipelineWithNamer creates a new Pipeline that decorates errors using the
// provided namer func, which derives a meaningful identifier string from the
// Pipeline's Input.
func PipelineWithNamer[Input any](namer func(in Input) string) *Pipeline[Input] {
	return &Pipeline[Input]{
		inputnamer: namer,
	}
}

// Pipeline is an ordered collection of emitters. When called, it builds a
// [Tree] by calling each of its emitters in order.
//
// The purpose of Pipeline is to make it easy to assemble a case-specific
// generator out of small emitters that each have one narrow responsibility.
//
// The artifacts of all member emitters share one relative path namespace.
// Pipeline does not modify emitted paths, and path uniqueness (per
// [Artifacts.Validate]) is enforced across the aggregate set.
//
// Unlike a best-effort build, a Pipeline stops at the first emitter error and
// returns it with the emitter's name attached; no partial tree is returned.
type Pipeline[Input any] struct {
	mut sync.RWMutex

	emitters []NamedEmitter

	// postprocessors, run on every artifact returned from each emitter
	post []ArtifactMapper

	// inputnamer, if non-nil, gives a name to an input.
	inputnamer func(in Input) string
}

func (p *Pipeline[Input]) EmitterName() string {
	return fmt.Sprintf("Pipeline[%s]", reflect.TypeOf(new(Input)).Elem().String())
}

func (p *Pipeline[Input]) wrapinerr(in Input, err error) error {
	if err == nil || p.inputnamer == nil {
		return err
	}
	return fmt.Errorf("%w for input %q", err, p.inputnamer(in))
}

// Generate runs every emitter on in and returns the combined Tree.
func (p *Pipeline[Input]) Generate(in Input) (*Tree, error) {
	p.mut.RLock()
	defer p.mut.RUnlock()

	tree := NewTree()

	manyout := func(e NamedEmitter, al Artifacts, err error) error {
		if err != nil {
			return fmt.Errorf("%s: %w", e.EmitterName(), err)
		}
		for i := range al {
			al[i].From = append([]NamedEmitter{e}, al[i].From...)
		}
		if err = al.Validate(); err != nil {
			return fmt.Errorf("%s returned invalid artifacts: %w", e.EmitterName(), err)
		}

		for i, a := range al {
			for _, post := range p.post {
				oa, err := post(a)
				if err != nil {
					return fmt.Errorf("postprocessing of %s from %s failed: %w", a.RelativePath, emitterStack(a.From), err)
				}
				a = oa
			}
			al[i] = a
		}
		return tree.Add(e.EmitterName(), al...)
	}
	oneout := func(e NamedEmitter, a *Artifact, err error) error {
		var al Artifacts
		if a != nil && a.Exists() {
			al = Artifacts{*a}
		}
		if err == nil && len(al) == 0 {
			return nil
		}
		return manyout(e, al, err)
	}

	for _, e := range p.emitters {
		var err error
		switch emitter := e.(type) {
		case OneToOne[Input]:
			a, gerr := emitter.Generate(in)
			err = oneout(emitter, a, gerr)
		case OneToMany[Input]:
			al, gerr := emitter.Generate(in)
			err = manyout(emitter, al, gerr)
		default:
			panic("unreachable")
		}
		if err != nil {
			return nil, p.wrapinerr(in, err)
		}
	}

	return tree, nil
}

// Append adds emitters to the end of the Pipeline. In Generate, emitters are
// called in the order they were appended.
//
// Every emitter must also implement [OneToOne] or [OneToMany], or this
// method panics. For type safety, use the Append* methods.
func (p *Pipeline[Input]) Append(emitters ...Emitter[Input]) {
	list := make([]NamedEmitter, len(emitters))
	for i, e := range emitters {
		switch e.(type) {
		case OneToOne[Input], OneToMany[Input]:
			list[i] = e
		default:
			panic(fmt.Sprintf("%T is not a valid Emitter, must implement (OneToOne | OneToMany)", e))
		}
	}
	p.append(list...)
}

// AppendOneToOne is like [Pipeline.Append], but typesafe for OneToOne emitters.
func (p *Pipeline[Input]) AppendOneToOne(emitters ...OneToOne[Input]) {
	for _, e := range emitters {
		p.append(e)
	}
}

// AppendOneToMany is like [Pipeline.Append], but typesafe for OneToMany emitters.
func (p *Pipeline[Input]) AppendOneToMany(emitters ...OneToMany[Input]) {
	for _, e := range emitters {
		p.append(e)
	}
}

func (p *Pipeline[Input]) append(e ...NamedEmitter) {
	p.mut.Lock()
	p.emitters = append(p.emitters, e...)
	p.mut.Unlock()
}

// AddPostprocessors appends mappers to the Pipeline's postprocessors, which
// are run (FIFO) on every artifact the Pipeline produces.
func (p *Pipeline[Input]) AddPostprocessors(fn ...ArtifactMapper) {
	p.mut.Lock()
	p.post = append(p.post, fn...)
	p.mut.Unlock()
}
