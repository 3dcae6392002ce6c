package service

import "errors"

var (
	ErrInvalidMaterialType = errors.New("invalid material type")
	ErrInvalidReference    = errors.New("referenced record does not exist")
	ErrEmptyField          = errors.New("required field is empty")
	ErrNoQualifyingItems   = errors.New("no active and fixed items found")
	ErrUpstreamGeneration  = errors.New("text generation failed")
)
