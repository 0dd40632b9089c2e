package bal

import (
	"log/slog"
)

// SerializerFactory constructs a serializer bound to one tree context.
type SerializerFactory func(*TreeContext) Serializer

// AnalyzerFactory constructs an analyzer bound to one tree context.
type AnalyzerFactory func(*TreeContext) Analyzer

// MutatorFactory constructs a mutator bound to one tree context.
type MutatorFactory func(*TreeContext) Mutator

// Registry maps declared interfaces to the capability implementations
// that understand them. Every TreeContext owns its own instance,
// populated from its Factory's entries, so two trees can resolve the
// same interface to different implementations concurrently.
//
// Resolution tries an exact match first, then walks the interface's
// declared ancestor chain and returns the nearest registered ancestor's
// implementation. Ancestor lookups are memoized per interface, keeping
// repeated resolution O(1) amortized. The registry is not safe for
// concurrent mutation; entries are expected to be registered before the
// first resolution.
type Registry struct {
	ctx         *TreeContext
	serializers table[SerializerFactory]
	analyzers   table[AnalyzerFactory]
	mutators    table[MutatorFactory]
}

// NewRegistry creates an empty registry bound to ctx. Most callers get
// a populated registry from Factory.Create instead.
func NewRegistry(ctx *TreeContext) *Registry {
	return &Registry{
		ctx:         ctx,
		serializers: newTable[SerializerFactory]("serializer"),
		analyzers:   newTable[AnalyzerFactory]("analyzer"),
		mutators:    newTable[MutatorFactory]("mutator"),
	}
}

// RegisterSerializer adds or replaces the serializer for a model interface.
func (r *Registry) RegisterSerializer(iface *Interface, factory SerializerFactory) {
	r.serializers.register(iface, factory)
}

// RegisterAnalyzer adds or replaces the analyzer for a capability interface.
func (r *Registry) RegisterAnalyzer(iface *Interface, factory AnalyzerFactory) {
	r.analyzers.register(iface, factory)
}

// RegisterMutator adds or replaces the mutator for a capability interface.
func (r *Registry) RegisterMutator(iface *Interface, factory MutatorFactory) {
	r.mutators.register(iface, factory)
}

// Serializer resolves and constructs the serializer for iface.
func (r *Registry) Serializer(iface *Interface) (Serializer, error) {
	factory, err := r.serializers.resolve(iface)
	if err != nil {
		return nil, err
	}
	return factory(r.ctx), nil
}

// Analyzer resolves and constructs the analyzer for iface.
func (r *Registry) Analyzer(iface *Interface) (Analyzer, error) {
	factory, err := r.analyzers.resolve(iface)
	if err != nil {
		return nil, err
	}
	return factory(r.ctx), nil
}

// Mutator resolves and constructs the mutator for iface.
func (r *Registry) Mutator(iface *Interface) (Mutator, error) {
	factory, err := r.mutators.resolve(iface)
	if err != nil {
		return nil, err
	}
	return factory(r.ctx), nil
}

// clone copies the registered entries (not the memoized lookups) into a
// fresh registry bound to ctx.
func (r *Registry) clone(ctx *TreeContext) *Registry {
	out := NewRegistry(ctx)
	for iface, factory := range r.serializers.entries {
		out.serializers.entries[iface] = factory
	}
	for iface, factory := range r.analyzers.entries {
		out.analyzers.entries[iface] = factory
	}
	for iface, factory := range r.mutators.entries {
		out.mutators.entries[iface] = factory
	}
	return out
}

// table is one capability lookup: interface identity to implementation
// factory, with memoized ancestor resolution.
type table[F any] struct {
	kind     string
	entries  map[*Interface]F
	resolved map[*Interface]*Interface // requested -> registered ancestor (nil: known miss)
}

func newTable[F any](kind string) table[F] {
	return table[F]{
		kind:     kind,
		entries:  make(map[*Interface]F),
		resolved: make(map[*Interface]*Interface),
	}
}

func (t *table[F]) register(iface *Interface, factory F) {
	t.entries[iface] = factory
	// Late registration invalidates any memoized ancestor walks.
	clear(t.resolved)
}

func (t *table[F]) resolve(iface *Interface) (F, error) {
	var zero F
	if iface == nil {
		return zero, &UnregisteredInterfaceError{Interface: &Interface{name: "<nil>"}, Kind: t.kind}
	}
	if factory, ok := t.entries[iface]; ok {
		return factory, nil
	}
	if target, ok := t.resolved[iface]; ok {
		if target == nil {
			return zero, &UnregisteredInterfaceError{Interface: iface, Kind: t.kind}
		}
		return t.entries[target], nil
	}
	for _, ancestor := range iface.chain[1:] {
		if factory, ok := t.entries[ancestor]; ok {
			t.resolved[iface] = ancestor
			slog.Debug("bal: resolved via ancestor",
				"kind", t.kind, "interface", iface.Name(), "ancestor", ancestor.Name())
			return factory, nil
		}
	}
	t.resolved[iface] = nil
	slog.Debug("bal: no implementation registered", "kind", t.kind, "interface", iface.Name())
	return zero, &UnregisteredInterfaceError{Interface: iface, Kind: t.kind}
}
