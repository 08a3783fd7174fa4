package render

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/calibration"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/geometry"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
)

// circle with inner and outer border
func ring(n int) *model.Track {
	ret := &model.Track{Name: "ring"}
	for k := range n {
		a := 2 * math.Pi * float64(k) / float64(n)
		dir := geometry.Point{X: math.Cos(a), Y: math.Sin(a) * 0.6}
		ret.Center = append(ret.Center, dir.Scale(5))
		ret.Inner = append(ret.Inner, dir.Scale(4.5))
		ret.Outer = append(ret.Outer, dir.Scale(5.5))
	}
	return ret
}

func verifiedRows(t *testing.T, track *model.Track) []calibration.Row {
	t.Helper()
	p := calibration.DefaultParams()
	p.LookAhead = 2
	cfg, err := calibration.NewCalibrator().Calibrate(context.Background(), track, p)
	require.NoError(t, err)
	rows, err := calibration.Verify(track, cfg)
	require.NoError(t, err)
	return rows
}

func TestRender(t *testing.T) {
	track := ring(60)
	opts := Options{Width: 200, Height: 150, Margin: 10, ArrowEvery: 10, ArrowLength: 1}
	img, err := Render(track, verifiedRows(t, track), opts)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())

	// corner is outside the track and stays white
	r, g, b, _ := img.At(1, 149).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff}, []uint32{r, g, b})
}

func TestRenderCenterOnly(t *testing.T) {
	track := ring(40)
	track.Inner, track.Outer = nil, nil
	img, err := Render(track, verifiedRows(t, track), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1600, img.Bounds().Dx())
}

func TestRenderErrors(t *testing.T) {
	track := ring(20)
	_, err := Render(track, nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrRowMismatch)
}

func TestSavePNG(t *testing.T) {
	track := ring(30)
	img, err := Render(track, verifiedRows(t, track), DefaultOptions())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "verify.png")
	require.NoError(t, SavePNG(path, img))
	assert.FileExists(t, path)
}
