package tensor

import "github.com/pkg/errors"

// ErrShapeMismatch is returned when tensors that must agree in shape or
// element type do not. Errors carrying more context wrap it, so callers
// should match with errors.Is.
var ErrShapeMismatch = errors.New("shape mismatch")
