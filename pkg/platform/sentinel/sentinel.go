// Package sentinel holds errors that describe infrastructure state rather
// than bad input. Stores wrap them; services translate them into domain
// errors from pkg/domain-errors.
package sentinel

import "errors"

// ErrUnavailable means a backing store could not be reached or answered with
// a transport error. Callers may retry or fall back.
var ErrUnavailable = errors.New("unavailable")
