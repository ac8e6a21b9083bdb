package slideforge

// Sink accumulates rendered pages into one output document. Append order
// is page order. Implementations are used from a single goroutine; the
// aggregators never call them from render workers.
//
// Exactly one of Finalize or Discard ends a sink's life. Discard must
// leave no partial output file behind.
type Sink interface {
	AppendPage(a *Artifact) error
	Finalize() error
	Discard() error
}
