package ports

import "github.com/bft-labs/lineship/pkg/log"

// Logger is the structured logger used by application code.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Field constructors re-exported for application code.
var (
	String   = log.String
	Int      = log.Int
	Int64    = log.Int64
	Float64  = log.Float64
	Bool     = log.Bool
	Duration = log.Duration
	Err      = log.Err
)
