package bal

// NodeOption is a functional option for node construction.
type NodeOption func(*Node)

// WithBitSize records the bit width of a packed span whose meaningful
// size is not a whole number of bytes.
func WithBitSize(bits int) NodeOption {
	return func(n *Node) {
		if bits > 0 {
			n.bitSize = bits
		}
	}
}

// FactoryOption is a functional option for configuring NewFactory.
type FactoryOption func(*Factory)

// WithCacheSize bounds the memoization cache of created contexts.
func WithCacheSize(n int) FactoryOption {
	return func(f *Factory) {
		if n > 0 {
			f.cacheSize = n
		}
	}
}
