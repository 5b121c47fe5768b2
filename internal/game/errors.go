package game

import "errors"

// ErrMissingEnvironment is reported when the play area bounds are unavailable.
// Passes that need bounds skip the frame instead of failing.
var ErrMissingEnvironment = errors.New("play area bounds unavailable")
