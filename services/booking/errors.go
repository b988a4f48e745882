package booking

import "fmt"

// BookingError is an expected, reportable rejection. Handlers map these to
// user-facing responses; they are never retried automatically.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	// ErrNoEligibleProvider means no candidate passed the hard filters with a
	// covering free window. The user must alter criteria or time.
	ErrNoEligibleProvider = &BookingError{
		Code:    "noEligibleProvider",
		Message: "no provider matches the requested criteria and time",
	}
	// ErrNoAvailableSlot means the selected window was lost to a racing
	// request, or the chosen provider has no window covering the request.
	// The user should retry with a fresh search.
	ErrNoAvailableSlot = &BookingError{
		Code:    "noAvailableSlot",
		Message: "the requested time is no longer available, try a different time",
	}
)

// InvalidInputError reports a malformed or past-dated request.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalidInput: %s", e.Reason)
}

// LimitReachedError reports an exhausted quota bucket. It carries usage, limit
// and tier so the caller can render an upgrade prompt.
type LimitReachedError struct {
	Kind  string
	Used  int
	Limit int
	Tier  string
}

func (e *LimitReachedError) Error() string {
	return fmt.Sprintf("limitReached: %s quota exhausted (%d/%d on %s tier)", e.Kind, e.Used, e.Limit, e.Tier)
}
