package models

import "errors"

var (
	// ErrDataUnavailable: the dataset could not be read or parsed.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrDataIntegrity: a required field is missing or holds an unmapped value.
	ErrDataIntegrity = errors.New("data integrity error")
	// ErrEmptyDataset: the table has no records.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrOptionalFieldMissing: a field needed by one aggregate is absent.
	ErrOptionalFieldMissing = errors.New("optional field missing")
)
