package safefetch

import "errors"

var (
	ErrTooManyRedirects = errors.New("too many redirects")
	ErrMissingLocation  = errors.New("redirect without location")
	ErrTimeout          = errors.New("fetch timed out")
	ErrUpstreamHTTP     = errors.New("upstream http error")
	ErrBodyTooLarge     = errors.New("declared body length over limit")
)
