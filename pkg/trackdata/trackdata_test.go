package trackdata

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sbinet/npyio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/geometry"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
)

func sampleTrack() *model.Track {
	return &model.Track{
		Name:   "mini",
		Center: []geometry.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Inner:  []geometry.Point{{0.1, 0.1}, {0.9, 0.1}, {0.9, 0.9}, {0.1, 0.9}},
		Outer:  []geometry.Point{{-0.1, -0.1}, {1.1, -0.1}, {1.1, 1.1}, {-0.1, 1.1}},
	}
}

func sampleBytes(t *testing.T) []byte {
	t.Helper()
	buf := bytes.Buffer{}
	require.NoError(t, Encode(&buf, sampleTrack()))
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	got, err := DecodeBytes(sampleBytes(t), "mini")
	require.NoError(t, err)
	if diff := cmp.Diff(sampleTrack(), got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCenterOnly(t *testing.T) {
	buf := bytes.Buffer{}
	m := mat.NewDense(3, 2, []float64{0, 0, 1, 0, 1, 1})
	require.NoError(t, npyio.Write(&buf, m))

	got, err := Decode(&buf, "center")
	require.NoError(t, err)
	assert.Len(t, got.Center, 3)
	assert.False(t, got.HasBorders())
	assert.Equal(t, geometry.Point{X: 1, Y: 1}, got.Center[2])
}

func TestDecodeErrors(t *testing.T) {
	buf := bytes.Buffer{}
	require.NoError(t, npyio.Write(&buf, mat.NewDense(2, 3, nil)))
	_, err := Decode(&buf, "three")
	assert.ErrorIs(t, err, ErrTrackFormat)

	buf.Reset()
	require.NoError(t, npyio.Write(&buf, mat.NewDense(3, 2, nil)))
	_, err = Decode(&buf, "flat")
	assert.ErrorIs(t, err, geometry.ErrDegenerateTrack)

	_, err = DecodeBytes([]byte("no numpy"), "garbage")
	assert.Error(t, err)
}

func trackServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	data := sampleBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/mini.npy" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadStoresLocalCopy(t *testing.T) {
	hits := atomic.Int32{}
	srv := trackServer(t, &hits)
	dir := t.TempDir()
	s := NewSource(WithBaseURL(srv.URL), WithDir(dir))

	first, err := s.Load(context.Background(), "mini")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "mini.npy"))

	second, err := s.Load(context.Background(), "mini")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, first, second)
}

func TestLoadPrefersLocalFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mini.npy"), sampleBytes(t), 0o600))
	s := NewSource(WithBaseURL("http://127.0.0.1:1"), WithDir(dir))

	got, err := s.Load(context.Background(), "mini")
	require.NoError(t, err)
	assert.Len(t, got.Center, 4)
}

func TestDownloadNotFound(t *testing.T) {
	hits := atomic.Int32{}
	srv := trackServer(t, &hits)
	s := NewSource(WithBaseURL(srv.URL), WithDir(""))

	_, err := s.Download(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrDownload)
	_, err = s.Load(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrDownload)
}

func TestCache(t *testing.T) {
	hits := atomic.Int32{}
	srv := trackServer(t, &hits)
	c := NewCache(NewSource(WithBaseURL(srv.URL), WithDir("")), time.Minute)
	ctx := context.Background()

	for range 3 {
		got, err := c.Get(ctx, "mini")
		require.NoError(t, err)
		assert.Equal(t, "mini", got.Name)
	}
	assert.Equal(t, int32(1), hits.Load())

	c.Invalidate(ctx, "mini")
	_, err := c.Get(ctx, "mini")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}
