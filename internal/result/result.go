package result

// State identifies which variant a Result holds.
type State int

const (
	// StateLoading marks an operation that has started but not finished.
	StateLoading State = iota
	// StateSuccess marks a completed operation carrying a value.
	StateSuccess
	// StateError marks a failed operation carrying a user-facing message.
	StateError
)

// Result is the closed three-variant outcome of an asynchronous operation.
// Exactly one variant is inhabited; consumers switch on State and treat an
// unknown state as a programming error.
type Result[T any] struct {
	state   State
	value   T
	message string
}

// Pending constructs the Loading variant.
func Pending[T any]() Result[T] {
	return Result[T]{state: StateLoading}
}

// Ok constructs the Success variant carrying value.
func Ok[T any](value T) Result[T] {
	return Result[T]{state: StateSuccess, value: value}
}

// Fail constructs the Error variant carrying a human-readable message.
// The message is the only failure detail a consumer ever sees.
func Fail[T any](message string) Result[T] {
	return Result[T]{state: StateError, message: message}
}

// State reports the inhabited variant.
func (r Result[T]) State() State {
	return r.state
}

// IsLoading reports whether the result is the Loading variant.
func (r Result[T]) IsLoading() bool {
	return r.state == StateLoading
}

// IsSuccess reports whether the result is the Success variant.
func (r Result[T]) IsSuccess() bool {
	return r.state == StateSuccess
}

// IsError reports whether the result is the Error variant.
func (r Result[T]) IsError() bool {
	return r.state == StateError
}

// Value returns the carried value and true when the result is Success.
func (r Result[T]) Value() (T, bool) {
	if r.state != StateSuccess {
		var zero T
		return zero, false
	}
	return r.value, true
}

// MustValue returns the carried value and panics on any other variant.
// Intended for tests and call sites that already checked IsSuccess.
func (r Result[T]) MustValue() T {
	if r.state != StateSuccess {
		panic("result: MustValue on non-success result")
	}
	return r.value
}

// Message returns the error message and true when the result is Error.
func (r Result[T]) Message() (string, bool) {
	if r.state != StateError {
		return "", false
	}
	return r.message, true
}
