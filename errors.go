package voltwire

import "errors"

// Sentinel errors for runtime operations. None of these ever reach the event
// source: dispatch entry points log and recover, per the no-fatal-failure
// policy. They exist so internal layers and tests can classify failures.
var (
	ErrComponentNotFound = errors.New("voltwire: component not found")
	ErrNoComponentRoot   = errors.New("voltwire: fragment has no component root")
	ErrBadResponse       = errors.New("voltwire: malformed action response")
	ErrRequestFailed     = errors.New("voltwire: request failed")
	ErrNavigationFailed  = errors.New("voltwire: navigation failed")
)

// IsComponentNotFound checks if err is a component lookup failure.
func IsComponentNotFound(err error) bool {
	return errors.Is(err, ErrComponentNotFound)
}

// IsTransportError checks if err is a network-level or status-level failure.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrRequestFailed)
}
