package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrEmptyMessage         = fmt.Errorf("nothing to send")
	ErrInvalidCommand       = fmt.Errorf("invalid command")
	ErrMalformedPreface     = fmt.Errorf("message does not start with an ownership preface")
	ErrUnresolvableIdentity = fmt.Errorf("user identity could not be resolved")
	ErrInvalidToken         = fmt.Errorf("invalid ownership token")
	ErrInvalidTransition    = fmt.Errorf("invalid interaction transition")

	// Relay failures, categorized from the chat platform response.
	ErrTargetUnreachable = fmt.Errorf("target channel is not reachable")
	ErrMessageNotFound   = fmt.Errorf("message not found")
	ErrNotRelayed        = fmt.Errorf("message was not posted by the relay")
	ErrPlatformRejected  = fmt.Errorf("platform rejected the request")
)
