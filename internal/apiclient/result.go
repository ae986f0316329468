package apiclient

// Outcome classifies the result of one remote API call. Every client
// operation produces exactly one of these; handlers branch on it instead
// of inspecting HTTP status codes or error chains.
type Outcome int

const (
	// OutcomeSuccess carries the decoded response value.
	OutcomeSuccess Outcome = iota
	// OutcomeNotFound covers remote 404 and an update answered with 304
	// (no effective change).
	OutcomeNotFound
	// OutcomeConflict is a business-rule rejection: duplicate identifying
	// field, in-use dependency.
	OutcomeConflict
	// OutcomeValidationRejected is malformed or out-of-range input the
	// remote side refused.
	OutcomeValidationRejected
	// OutcomeConnectivityFailure means the remote API was unreachable
	// (DNS, refused connection, timeout).
	OutcomeConnectivityFailure
	// OutcomeUnexpectedFailure is anything else, including a response
	// body that does not decode into the expected shape.
	OutcomeUnexpectedFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeConflict:
		return "conflict"
	case OutcomeValidationRejected:
		return "validation_rejected"
	case OutcomeConnectivityFailure:
		return "connectivity_failure"
	case OutcomeUnexpectedFailure:
		return "unexpected_failure"
	}
	return "unknown"
}

// Result is the outcome of one remote call. Value is meaningful only for
// OutcomeSuccess, Message for OutcomeConflict and
// OutcomeValidationRejected, Err for the two failure outcomes.
type Result[T any] struct {
	Outcome Outcome
	Value   T
	Message string
	Err     error
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool { return r.Outcome == OutcomeSuccess }

func success[T any](v T) Result[T] {
	return Result[T]{Outcome: OutcomeSuccess, Value: v}
}

func notFound[T any]() Result[T] {
	return Result[T]{Outcome: OutcomeNotFound}
}

func conflict[T any](detail string) Result[T] {
	return Result[T]{Outcome: OutcomeConflict, Message: detail}
}

func validationRejected[T any](detail string) Result[T] {
	return Result[T]{Outcome: OutcomeValidationRejected, Message: detail}
}

func connectivityFailure[T any](err error) Result[T] {
	return Result[T]{Outcome: OutcomeConnectivityFailure, Err: err}
}

func unexpectedFailure[T any](err error) Result[T] {
	return Result[T]{Outcome: OutcomeUnexpectedFailure, Err: err}
}
