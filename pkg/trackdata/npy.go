// Package trackdata reads track layouts from the numpy files published in
// the deepracer-race-data repository.
package trackdata

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/geometry"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
)

var ErrTrackFormat = errors.New("unsupported track format")

// Decode reads a N x 6 (center, inner, outer) or N x 2 (center only)
// float64 array.
func Decode(r io.Reader, name string) (*model.Track, error) {
	var m mat.Dense
	if err := npyio.Read(r, &m); err != nil {
		return nil, fmt.Errorf("decode track %s: %w", name, err)
	}
	rows, cols := m.Dims()
	if cols != 2 && cols != 6 {
		return nil, fmt.Errorf("%w: track %s has %d columns", ErrTrackFormat, name, cols)
	}
	ret := &model.Track{Name: name, Center: column(&m, 0, rows)}
	if cols == 6 {
		ret.Inner = column(&m, 2, rows)
		ret.Outer = column(&m, 4, rows)
	}
	if err := geometry.Validate(ret.Center); err != nil {
		return nil, fmt.Errorf("track %s: %w", name, err)
	}
	return ret, nil
}

// DecodeBytes is a convenience wrapper for Decode
func DecodeBytes(data []byte, name string) (*model.Track, error) {
	return Decode(bytes.NewReader(data), name)
}

// Encode writes the track in the same layout Decode reads.
func Encode(w io.Writer, t *model.Track) error {
	cols := 2
	if t.HasBorders() {
		cols = 6
	}
	m := mat.NewDense(len(t.Center), cols, nil)
	for i := range t.Center {
		m.Set(i, 0, t.Center[i].X)
		m.Set(i, 1, t.Center[i].Y)
		if cols == 6 {
			m.Set(i, 2, t.Inner[i].X)
			m.Set(i, 3, t.Inner[i].Y)
			m.Set(i, 4, t.Outer[i].X)
			m.Set(i, 5, t.Outer[i].Y)
		}
	}
	return npyio.Write(w, m)
}

func column(m *mat.Dense, c, rows int) []geometry.Point {
	ret := make([]geometry.Point, rows)
	for i := range rows {
		ret[i] = geometry.Point{X: m.At(i, c), Y: m.At(i, c+1)}
	}
	return ret
}
