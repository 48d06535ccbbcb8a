package domain

import "errors"

// ErrRenderFailed marks failures that are not logo related and so cannot
// degrade to a plain code.
var ErrRenderFailed = errors.New("qr render failed")
