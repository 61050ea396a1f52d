package iterators

import (
	"github.com/rotisserie/eris"
)

// ErrIteratorExhausted is returned by Next once every element has been consumed.
var ErrIteratorExhausted = eris.New("iterator exhausted")
