package glossary

import "errors"

var (
	// ErrAlreadyUpdating is returned when a refresh is requested while another one is running.
	ErrAlreadyUpdating = errors.New("glossary is already updating")
	// ErrNoRefreshSources is returned by Refresh when no refresh sources are configured.
	ErrNoRefreshSources = errors.New("no refresh sources configured")
	// ErrRefreshFailed wraps the cause of a refresh that left the previous word list in place.
	ErrRefreshFailed = errors.New("refresh failed")
	// ErrEmptyWordList is returned when the sources produced no entries.
	ErrEmptyWordList = errors.New("word list is empty")
)
