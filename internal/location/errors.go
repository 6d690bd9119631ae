package location

import "fmt"

// ErrorCode mirrors the geolocation error codes reported by the host platform.
type ErrorCode int

const (
	PermissionDenied    ErrorCode = 1
	PositionUnavailable ErrorCode = 2
	Timeout             ErrorCode = 3
)

func (c ErrorCode) String() string {
	switch c {
	case PermissionDenied:
		return "PERMISSION_DENIED"
	case PositionUnavailable:
		return "POSITION_UNAVAILABLE"
	case Timeout:
		return "TIMEOUT"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(c))
	}
}

type Error struct {
	Code ErrorCode
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "location error: " + e.Code.String()
	}
	return fmt.Sprintf("location error: %s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
