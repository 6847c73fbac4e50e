package domain

import "errors"

var (
	ErrStationNotFound = errors.New("station not found")
	ErrAlertNotFound   = errors.New("alert not found")
	ErrDuplicatePhone  = errors.New("station phone already registered")
	ErrDuplicateAlert  = errors.New("alert id already exists")
	ErrInvalidStatus   = errors.New("invalid alert status")
)

var ErrInvalidLocation = errors.New("invalid alert location")
