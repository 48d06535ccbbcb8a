package urlsafety

import "errors"

// Rejection reasons. Every error returned by Validate matches exactly one of these.
var (
	ErrMalformedURL      = errors.New("malformed url")
	ErrUnsupportedScheme = errors.New("unsupported scheme")
	ErrCredentialsInURL  = errors.New("credentials in url")
	ErrBlockedHostname   = errors.New("blocked hostname")
	ErrPrivateAddress    = errors.New("private address")
	ErrNumericHostname   = errors.New("numeric hostname bypass")
)
