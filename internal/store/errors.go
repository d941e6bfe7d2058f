package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrSettingNotFound is returned when a requested key (token, theme)
	// has no persisted value yet.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrSettingNotSaved is returned when an upsert completes without error
	// but the number of affected rows is zero, indicating that no value was
	// actually persisted.
	ErrSettingNotSaved = errors.New("setting was not saved")
)
