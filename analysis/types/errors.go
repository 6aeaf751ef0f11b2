package types

import (
	"cosmossdk.io/errors"
)

const ModuleName = "ohm-analyzer"

// Analysis errors
var (
	ErrInvalidSample        = errors.Register(ModuleName, 2, "invalid sample")
	ErrInsufficientSamples  = errors.Register(ModuleName, 3, "insufficient samples")
	ErrDegenerateRegression = errors.Register(ModuleName, 4, "degenerate regression")
	ErrDivisionByZero       = errors.Register(ModuleName, 5, "division by zero")
)
