package domain

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultQueryLimit = 1000
	MaxQueryLimit     = 10000
)

var ErrInvalidRange = errors.New("since must not be after until")

// ClickQuery selects clicks with Since <= ClickedAt <= Until, oldest first.
type ClickQuery struct {
	Since time.Time
	Until time.Time
	Limit int
}

// NewClickQuery builds a query from Unix-second bounds. A zero limit means
// DefaultQueryLimit and anything above MaxQueryLimit is capped.
func NewClickQuery(since, until int64, limit int) (ClickQuery, error) {
	if limit == 0 {
		limit = DefaultQueryLimit
	}
	if limit > MaxQueryLimit {
		limit = MaxQueryLimit
	}

	q := ClickQuery{
		Since: time.Unix(since, 0).UTC(),
		Until: time.Unix(until, 0).UTC(),
		Limit: limit,
	}
	if err := q.Validate(); err != nil {
		return ClickQuery{}, err
	}
	return q, nil
}

func (q ClickQuery) Validate() error {
	if q.Since.After(q.Until) {
		return ErrInvalidRange
	}
	return validation.ValidateStruct(&q,
		validation.Field(&q.Limit, validation.Required, validation.Min(1), validation.Max(MaxQueryLimit)),
	)
}
