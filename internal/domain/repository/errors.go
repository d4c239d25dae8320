package repository

import "errors"

// ErrPresetNotFound is returned when a preset file or its FILTER section is missing.
var ErrPresetNotFound = errors.New("preset not found")
