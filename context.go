package bal

import (
	"github.com/redballoonsecurity/bal/internal/cache"
)

// TreeContext owns one analyzed blob: its root node, the capability
// registry resolving implementations for that tree, and a memoization
// cache for expensive analyzer results.
//
// Contexts are independent; separate blobs may be processed fully in
// parallel, one context per worker. A single context is not safe for
// concurrent mutation.
type TreeContext struct {
	root     *Node
	registry *Registry
	memo     *cache.Cache
}

// Root returns the root node. It starts packed and is fixed for the
// context's lifetime.
func (c *TreeContext) Root() *Node { return c.root }

// Registry returns the context's capability registry.
func (c *TreeContext) Registry() *Registry { return c.registry }

// Serializer resolves a serializer for iface through the registry.
func (c *TreeContext) Serializer(iface *Interface) (Serializer, error) {
	return c.registry.Serializer(iface)
}

// Analyzer resolves an analyzer for iface through the registry.
func (c *TreeContext) Analyzer(iface *Interface) (Analyzer, error) {
	return c.registry.Analyzer(iface)
}

// Mutator resolves a mutator for iface through the registry.
func (c *TreeContext) Mutator(iface *Interface) (Mutator, error) {
	return c.registry.Mutator(iface)
}

// CacheGet reads a memoized analyzer result.
func (c *TreeContext) CacheGet(key string) (any, bool) { return c.memo.Get(key) }

// CachePut memoizes an analyzer result. Keys are chosen by callers;
// nothing is invalidated automatically beyond what mutators delete
// explicitly.
func (c *TreeContext) CachePut(key string, value any) { c.memo.Put(key, value) }

// CacheDelete drops a memoized result, typically from a mutator that
// just made it stale.
func (c *TreeContext) CacheDelete(key string) { c.memo.Delete(key) }

// Factory accumulates capability registrations and produces tree
// contexts, one per analyzed blob. A factory is stateless with respect
// to any particular tree and may be reused across many blobs of the
// same format family.
type Factory struct {
	rootIface *Interface
	proto     *Registry
	cacheSize int
}

// NewFactory creates a factory whose contexts root their trees at the
// given interface.
func NewFactory(root *Interface, opts ...FactoryOption) *Factory {
	if root == nil {
		panic("bal: NewFactory requires a root interface")
	}
	f := &Factory{
		rootIface: root,
		proto:     NewRegistry(nil),
		cacheSize: cache.DefaultSize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RootInterface returns the declared root interface for created trees.
func (f *Factory) RootInterface() *Interface { return f.rootIface }

// RegisterSerializer adds or replaces the serializer for a model
// interface in all contexts created afterwards.
func (f *Factory) RegisterSerializer(iface *Interface, factory SerializerFactory) {
	f.proto.RegisterSerializer(iface, factory)
}

// RegisterAnalyzer adds or replaces the analyzer for a capability
// interface in all contexts created afterwards.
func (f *Factory) RegisterAnalyzer(iface *Interface, factory AnalyzerFactory) {
	f.proto.RegisterAnalyzer(iface, factory)
}

// RegisterMutator adds or replaces the mutator for a capability
// interface in all contexts created afterwards.
func (f *Factory) RegisterMutator(iface *Interface, factory MutatorFactory) {
	f.proto.RegisterMutator(iface, factory)
}

// Create builds a new tree context over data: a fresh registry
// snapshotting the factory's entries, an empty memoization cache, and a
// packed root node with the factory's root interface. No parsing
// happens until the root is unpacked.
func (f *Factory) Create(data []byte) (*TreeContext, error) {
	ctx := &TreeContext{memo: cache.New(f.cacheSize)}
	ctx.registry = f.proto.clone(ctx)
	ctx.root = NewPackedNode(ctx, data, f.rootIface)
	return ctx, nil
}
