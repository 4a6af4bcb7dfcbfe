package ocr

import "errors"

var (
	// ErrUnknownEngine indicates the configured engine name is not registered.
	ErrUnknownEngine = errors.New("unknown ocr engine")
	// ErrMissingOperation indicates the analyze response carried no operation location.
	ErrMissingOperation = errors.New("analyze response missing operation location")
	// ErrOperationFailed indicates the read operation finished in a failed state.
	ErrOperationFailed = errors.New("read operation failed")
)
