package model

import "errors"

// ErrEmptyInput is returned when the caller submits empty or blank text.
// This is the only failure surfaced to the caller; every external-service
// failure is recovered internally via the rule-based fallback.
var ErrEmptyInput = errors.New("no constraint text provided")
