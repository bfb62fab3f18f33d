package reconstruct

import "errors"

// ErrInvalidGame marks input that cannot describe a reconstructable game,
// e.g. identical team ids or a roster smaller than a lineup.
var ErrInvalidGame = errors.New("invalid game input")
