// File: utils/constants.go
package utils

import "time"

// SelectionPrefix is the prefix used for Redis selection keys.
const SelectionPrefix = "selection:"

// SelectionTTL is the time-to-live for an untouched selection.
const SelectionTTL = 30 * time.Minute

// Date and time-of-day layouts used throughout the store.
const (
	DateLayout = "2006-01-02"
	SlotLayout = "15:04"
)

// SlotStep is the granularity of declared slots.
const SlotStep = 30 * time.Minute
