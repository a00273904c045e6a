package placement

import (
	"fmt"
	"strings"
)

// Region names the part of the background an object may be placed in.
type Region int

const (
	DownRight Region = iota
	DownLeft
	UpRight
	UpLeft
	Anywhere
	numRegions
)

var regionNames = [numRegions]string{
	DownRight: "down_right",
	DownLeft:  "down_left",
	UpRight:   "up_right",
	UpLeft:    "up_left",
	Anywhere:  "anywhere",
}

// Regions lists every region in declaration order.
func Regions() []Region {
	return []Region{DownRight, DownLeft, UpRight, UpLeft, Anywhere}
}

func (r Region) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Region(%d)", int(r))
	}
	return regionNames[r]
}

func (r Region) Valid() bool {
	return r >= 0 && r < numRegions
}

// ParseRegion maps a region name such as "up_left" to its Region.
func ParseRegion(s string) (Region, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range regionNames {
		if n == name {
			return Region(i), nil
		}
	}
	return 0, fmt.Errorf("unknown region %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Region) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid region %d", int(r))
	}
	return []byte(regionNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Region) UnmarshalText(b []byte) error {
	v, err := ParseRegion(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Range is an inclusive interval of top-left coordinates on one axis.
type Range struct {
	Low, High int
}

func (r Range) Empty() bool { return r.Low > r.High }

func (r Range) Contains(v int) bool { return v >= r.Low && v <= r.High }

// bound selects one end of a region's range relative to the background.
type bound int

const (
	atZero          bound = iota // 0
	atCenter                     // cx or cy
	atMax                        // W or H
	atMaxLessCenter              // W-cx or H-cy
)

func (b bound) resolve(c, m int) int {
	switch b {
	case atCenter:
		return c
	case atMax:
		return m
	case atMaxLessCenter:
		return m - c
	}
	return 0
}

// regionTable holds, per region, the x range ends followed by the y range ends.
var regionTable = [numRegions][4]bound{
	DownRight: {atCenter, atMax, atCenter, atMax},
	DownLeft:  {atZero, atMaxLessCenter, atCenter, atMax},
	UpRight:   {atCenter, atMax, atZero, atMaxLessCenter},
	UpLeft:    {atZero, atMaxLessCenter, atZero, atMaxLessCenter},
	Anywhere:  {atZero, atMax, atZero, atMax},
}

// Bounds returns the valid top-left x and y ranges for an object of size obj
// placed on a background of size bg inside region. A range whose Low exceeds
// its High is reported as an *InvalidRegionError.
func Bounds(region Region, bg, obj Size) (Range, Range, error) {
	if !region.Valid() {
		return Range{}, Range{}, fmt.Errorf("invalid region %d", int(region))
	}
	cx, cy := bg.W/2, bg.H/2
	w, h := bg.W-obj.W, bg.H-obj.H

	t := regionTable[region]
	xr := Range{Low: t[0].resolve(cx, w), High: t[1].resolve(cx, w)}
	yr := Range{Low: t[2].resolve(cy, h), High: t[3].resolve(cy, h)}

	if xr.Empty() {
		return xr, yr, &InvalidRegionError{Region: region, Axis: "x", Low: xr.Low, High: xr.High}
	}
	if yr.Empty() {
		return xr, yr, &InvalidRegionError{Region: region, Axis: "y", Low: yr.Low, High: yr.High}
	}
	return xr, yr, nil
}
