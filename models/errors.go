package models

import "errors"

// Validation errors for sheet construction and submission.
var (
	// ErrMissingField indicates a required field was absent from a flat
	// field representation.
	ErrMissingField = errors.New("missing field")

	// ErrMalformedField indicates a field was present but of the wrong type.
	ErrMalformedField = errors.New("malformed field")

	// ErrSheetNotFound indicates no sheet record exists for a message ID.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrPlaceholderContent indicates a submission still contained the
	// literal (url) placeholder instead of an actual sheet URL.
	ErrPlaceholderContent = errors.New("submission contains placeholder url")

	// ErrNotSubmissionChannel indicates a submission was attempted outside
	// the configured sheet channel.
	ErrNotSubmissionChannel = errors.New("channel not valid for sheet submission")
)
