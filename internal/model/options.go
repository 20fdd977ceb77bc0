package model

// Options configures the behaviour of the Builder. The public adapter in
// pkg/model constructs them and passes them into New.
type Options struct {
	// Labeler derives a display label for fields declared without one.
	Labeler func(string) string
}

func defaultOptions() Options {
	return Options{
		Labeler: DefaultLabeler,
	}
}
