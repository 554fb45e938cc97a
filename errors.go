package gridtext

import "errors"

// Sentinel errors for gridtext package.
var (
	// ErrTooManyQuads is returned when a grid holds more cells than 16-bit
	// indices can address. The frame keeps the first MaxQuads quads.
	ErrTooManyQuads = errors.New("gridtext: too many quads for 16-bit indices")
)
