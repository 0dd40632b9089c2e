// Package bal represents arbitrary binary blobs (firmware images,
// bitstreams, container formats) as a lazy tree of typed nodes.
//
// Each Node wraps a byte span, a structured Model, or both, and converts
// between the two on demand: Unpack materializes a Model from bytes,
// Pack serializes a Model back to bytes. Serializers resolve their own
// boundaries only, leaving child nodes packed until they are themselves
// unpacked, so analyzing one field of a large image never parses the rest.
//
// Format support is plugged in through a per-tree capability registry
// that maps declared structural interfaces to serializer, analyzer, and
// mutator implementations. Resolution falls back along each interface's
// declared ancestor chain, so an implementation registered for a general
// interface serves its specializations.
//
// Basic usage:
//
//	var Image = bal.NewInterface("FirmwareImage", "A vendor firmware image.")
//
//	factory := bal.NewFactory(Image)
//	factory.RegisterSerializer(Image, NewImageSerializer)
//
//	ctx, _ := factory.Create(data)
//	root := ctx.Root()
//
//	model, _ := root.Unpack()           // parse one level
//	for _, f := range model.Fields() {  // children stay packed
//	    fmt.Println(f.Name, f.Node.InterfaceType())
//	}
//
//	out, _ := root.Pack(false)          // cached round trip
//
// A Factory is reusable: each Create call produces an independent
// TreeContext with its own registry and memoization cache, so separate
// blobs can be processed fully in parallel. Mutation within a single
// tree is single-threaded; mutators drop the cached bytes of every
// ancestor of a changed node so stale serializations are never returned.
package bal
