package bal

// Serializer converts between the raw bytes and the structured model of
// one interface. Implementations are constructed bound to a single
// TreeContext (via SerializerFactory) so format parameters can depend on
// context-held configuration such as word sizes.
//
// Deserialize must not mutate its input and may construct further
// packed child nodes; that is how laziness extends recursively. One
// level's Deserialize resolves only its own boundaries, leaving children
// unparsed until their own Unpack.
//
// Serialize must produce bytes that deserialize back into an equal
// model. The round trip is content-level, not necessarily byte-identical,
// unless the format guarantees canonical output. It returns a
// TypeMismatchError when given a model of the wrong declared interface.
type Serializer interface {
	Deserialize(data []byte) (Model, error)
	Serialize(model Model) ([]byte, error)
}

// Analyzer extracts derived information from a tree, unpacking nodes as
// it descends. Analyzers must not mutate any node; they may memoize
// expensive results in the TreeContext cache.
//
// Implementations are resolved through the registry by a capability
// interface (not a model interface) and frequently expose richer typed
// APIs; callers type-assert the resolved value when they need one.
type Analyzer interface {
	Analyze(node *Node) (any, error)
}

// Mutator changes tree content. A mutator that changes a node's model
// or bytes must call Invalidate on it so the cached serializations of
// every ancestor up to the root are dropped.
type Mutator interface {
	Modify(node *Node) error
}
