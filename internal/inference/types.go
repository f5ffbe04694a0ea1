package inference

// Kind is the logical type inferred for a column.
type Kind string

const (
	KindUnknown     Kind = "unknown"
	KindEmail       Kind = "email_address"
	KindCategorical Kind = "categorical"
	KindInteger     Kind = "integer"
	KindDouble      Kind = "double"
)

// Result summarises an inference run.
// UniqueRatio is the number of distinct non-empty values divided by the
// number of non-empty values, or zero for an empty column.
type Result struct {
	Kind        Kind
	UniqueRatio float64
	Considered  int
}

// Reader exposes option values by name. *options.Store satisfies it.
type Reader interface {
	Get(key string) (any, error)
}

// Inferrer describes the behaviour required from a column type inferrer.
type Inferrer interface {
	Infer(values []string) (Result, error)
}
