package eo

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by SchemaError. Use errors.Is() to check these.
var (
	// ErrMissingField indicates a required eo: property is absent
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidField indicates an eo:bands property that is not a list of band objects
	ErrInvalidField = errors.New("invalid field value")

	// ErrUnassociatedAsset indicates band resolution on an asset with no owner
	ErrUnassociatedAsset = errors.New("asset is not associated with an item")

	// ErrBandIndexOutOfRange indicates an asset band index outside the owner's band list
	ErrBandIndexOutOfRange = errors.New("band index out of range")
)

// SchemaError is the single error kind raised by the EO layer
type SchemaError struct {
	Message string
	// Key is the namespaced property involved, when there is one
	Key string
	Err error
}

func (e *SchemaError) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel cause
func (e *SchemaError) Unwrap() error {
	return e.Err
}

func missingFieldError(key string) error {
	return &SchemaError{
		Message: fmt.Sprintf("Missing required field '%s' in properties", key),
		Key:     key,
		Err:     ErrMissingField,
	}
}

func invalidFieldError(key string, value interface{}, cause error) error {
	return &SchemaError{
		Message: fmt.Sprintf("Invalid value for field '%s' in properties: %v (%v)", key, value, cause),
		Key:     key,
		Err:     ErrInvalidField,
	}
}

func unassociatedAssetError() error {
	return &SchemaError{
		Message: "Asset is currently not associated with an item",
		Err:     ErrUnassociatedAsset,
	}
}

func bandIndexError(index int, count int) error {
	return &SchemaError{
		Message: fmt.Sprintf("Band index %d is out of range for an item with %d bands", index, count),
		Key:     BandsKey,
		Err:     ErrBandIndexOutOfRange,
	}
}
