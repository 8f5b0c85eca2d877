package model

import "errors"

// Failure taxonomy shared by transports and providers. ErrUpstream and
// ErrParse are hard failures to callers. ErrDateNotFound marks a non-trading
// day at the reference provider and is the only failure the resolver retries
// with the latest-available form.
var (
	ErrUpstream     = errors.New("upstream provider failure")
	ErrParse        = errors.New("unexpected provider payload")
	ErrDateNotFound = errors.New("no rates published for date")
)
