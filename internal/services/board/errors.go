package board

import "errors"

// Board errors
var (
	// Lookup errors
	ErrUnknownColumn   = errors.New("unknown column")
	ErrCardNotFound    = errors.New("card not found")
	ErrSubtaskNotFound = errors.New("subtask not found")

	// Validation errors
	ErrNilCard          = errors.New("card cannot be nil")
	ErrEmptyTitle       = errors.New("card title cannot be empty")
	ErrDuplicateCard    = errors.New("card id already exists on the board")
	ErrDuplicateColumn  = errors.New("column id appears twice in the pipeline")
	ErrPhaseOrder       = errors.New("column phases must be strictly increasing")
	ErrNoColumns        = errors.New("pipeline has no columns")
	ErrMissingTemplates = errors.New("template registry is required")
	ErrMissingDirectory = errors.New("team directory is required")
)
