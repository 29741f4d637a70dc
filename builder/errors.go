// Package builder: sentinel errors.
//
// Error policy follows the rest of the module: package-level sentinels only,
// branched on with errors.Is, context attached by implementations via %w.
package builder

import "errors"

// ErrBadCount indicates an atom count below the minimum for the requested
// constructor (chains need at least 1 atom, rings at least 3).
var ErrBadCount = errors.New("builder: atom count too small")

// ErrNilConstructor indicates a nil Constructor passed to BuildStructure.
var ErrNilConstructor = errors.New("builder: nil constructor")
