package cache

// Builder collects storage strategy bindings before the Cache is finalized.
// It is used once at session setup and discarded.
type Builder struct {
	def       Factory
	factories map[Descriptor]Factory
}

// NewBuilder creates a Builder whose default strategy is the unbounded map.
func NewBuilder() *Builder {
	return &Builder{
		def:       Unbounded,
		factories: make(map[Descriptor]Factory),
	}
}

// WithStrategy binds a non-default strategy factory to a descriptor.
func (b *Builder) WithStrategy(d Descriptor, f Factory) *Builder {
	b.factories[d] = f
	return b
}

// WithDefault replaces the default strategy used for unbound descriptors.
func (b *Builder) WithDefault(f Factory) *Builder {
	b.def = f
	return b
}

// Build finalizes the bindings into a Cache. The Builder may be reused or
// mutated afterwards without affecting the built Cache.
func (b *Builder) Build() *Cache {
	factories := make(map[Descriptor]Factory, len(b.factories))
	for d, f := range b.factories {
		factories[d] = f
	}
	return &Cache{
		def:       b.def,
		factories: factories,
		stores:    make(map[Descriptor]Store),
	}
}
