// Package typing resolves declared type names to runtime Go values.
//
// A Registry maps type names to TypeInfo. It is passed explicitly to the
// components that need it, so tests can use isolated registries:
//
//	reg := typing.NewRegistry()
//	_ = reg.Register(typing.TypeInfo{
//	    Name:         "vehicle.GeoPosition",
//	    New:          func() any { return &GeoPosition{} },
//	    CheckMembers: checkGeoPosition,
//	})
//
// Augment converts a raw decoded value (bool, uint64, map[any]any, ...) into
// the Go representation of its declared type. Primitive type names are built
// in; see Primitive* constants.
package typing
