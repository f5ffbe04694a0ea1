package options

const (
	// CategoricalThreshold is the unique-value ratio below which a column is categorical.
	CategoricalThreshold = "categorical_threshold"
	// NumericCategoricalThreshold optionally lets numeric columns be categorical. Nil disables it.
	NumericCategoricalThreshold = "numeric_categorical_threshold"
	// EmailInferenceRegex is the pattern every value must match to be inferred as an email address.
	EmailInferenceRegex = "email_inference_regex"
)

const defaultEmailPattern = `(^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$)`

// DefaultOptions returns the built-in option set in display order.
func DefaultOptions() []Option {
	return []Option{
		{Name: CategoricalThreshold, Value: 0.2},
		{Name: NumericCategoricalThreshold, Value: nil},
		{Name: EmailInferenceRegex, Value: defaultEmailPattern},
	}
}

// NewDefault constructs a Store seeded with DefaultOptions.
func NewDefault() *Store {
	store, err := New(DefaultOptions())
	if err != nil {
		// built-in defaults are unique and named
		panic(err)
	}
	return store
}
