package propcell

// The capability interfaces split a property into what a consumer actually
// needs: Bind takes a Readable source and a Writable target, so adapters
// like SourceProperty (read-only) and SinkProperty (write-only) compose with
// full properties without any common concrete type.

// Readable is the read side of a property: current value plus both change
// views.
type Readable[T any] interface {
	Read() T
	Raw() View[T]
	Behavior() View[T]
}

// Writable is the write side of a property.
type Writable[T any] interface {
	Write(T) error
}

// ReadWritable combines both capabilities; *Property implements it.
type ReadWritable[T any] interface {
	Readable[T]
	Writable[T]
}

var (
	_ ReadWritable[int] = (*Property[int])(nil)
	_ Readable[int]     = (*SourceProperty[int])(nil)
	_ Writable[int]     = (*SinkProperty[int])(nil)
)
