package aiwand

import "errors"

var (
	// ErrEmptyInput is returned when a helper receives no text to work with.
	ErrEmptyInput = errors.New("aiwand: input cannot be empty")

	// ErrInvalidChoices is returned when a classifier is given an empty
	// choice score map.
	ErrInvalidChoices = errors.New("aiwand: choice scores cannot be empty")
)
