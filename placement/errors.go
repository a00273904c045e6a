package placement

import (
	"errors"
	"fmt"
)

// ErrInvalidFraction is returned when the resize fraction does not leave a
// drawable object.
var ErrInvalidFraction = errors.New("resize fraction must be in (0, 1] and leave a non-empty object")

// InvalidRegionError reports a region whose coordinate range is empty, which
// happens when the object is too large for the requested part of the
// background.
type InvalidRegionError struct {
	Region Region
	Axis   string
	Low    int
	High   int
}

func (e *InvalidRegionError) Error() string {
	return fmt.Sprintf("region %s: empty %s range [%d, %d]", e.Region, e.Axis, e.Low, e.High)
}
