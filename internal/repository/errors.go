package repository

import "errors"

var (
	// ErrLogNotFound is returned when the access log does not exist.
	ErrLogNotFound = errors.New("log file not found")

	// ErrNavigationFailed is returned when the threat feed page could not be loaded.
	ErrNavigationFailed = errors.New("navigation to threat feed failed")
	// ErrFeedTimeout is returned when loading the threat feed exceeded the page load timeout.
	ErrFeedTimeout = errors.New("threat feed load timed out")
	// ErrContentRestricted is returned when the feed answered with an error status.
	ErrContentRestricted = errors.New("threat feed content is restricted or unavailable")
	// ErrExtractionFailed is returned when the feed page could not be parsed.
	ErrExtractionFailed = errors.New("threat table extraction failed")
)
