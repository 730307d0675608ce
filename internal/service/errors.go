package service

import "errors"

var (
	ErrNotLoaded         = errors.New("dataset not loaded")
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedFormat = errors.New("unsupported format")
)
