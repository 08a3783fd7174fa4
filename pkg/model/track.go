package model

import "github.com/mpapenbr/deepracer-toolkit-go/pkg/geometry"

// Track holds the waypoint lines of a single track layout.
// Inner and Outer are empty for center-only track files.
type Track struct {
	Name   string           `json:"name"`
	Center []geometry.Point `json:"center"`
	Inner  []geometry.Point `json:"inner,omitempty"`
	Outer  []geometry.Point `json:"outer,omitempty"`
}

// HasBorders is true if inner and outer lines match the center line
func (t *Track) HasBorders() bool {
	return len(t.Inner) == len(t.Center) && len(t.Outer) == len(t.Center)
}
