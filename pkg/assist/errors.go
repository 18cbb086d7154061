package assist

import "errors"

// ErrAborted signals the operator aborted input (e.g. Ctrl+C).
var ErrAborted = errors.New("assist: aborted")
