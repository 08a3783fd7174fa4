package trackdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mpapenbr/deepracer-toolkit-go/log"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
)

const DefaultBaseURL = "https://github.com/aws-deepracer-community/" +
	"deepracer-race-data/raw/main/raw_data/tracks/npy"

var ErrDownload = errors.New("track download failed")

type (
	Source struct {
		baseURL string
		dir     string
		client  *http.Client
		l       *log.Logger
	}
	SourceOption func(*Source)
)

func WithBaseURL(arg string) SourceOption {
	return func(s *Source) {
		s.baseURL = arg
	}
}

// WithDir sets the directory where downloaded tracks are kept.
// An empty dir disables the local copy.
func WithDir(arg string) SourceOption {
	return func(s *Source) {
		s.dir = arg
	}
}

func WithHTTPClient(arg *http.Client) SourceOption {
	return func(s *Source) {
		s.client = arg
	}
}

func WithLogger(arg *log.Logger) SourceOption {
	return func(s *Source) {
		s.l = arg
	}
}

func NewSource(opts ...SourceOption) *Source {
	ret := &Source{
		baseURL: DefaultBaseURL,
		dir:     ".",
		client:  &http.Client{Timeout: 30 * time.Second},
		l:       log.Default().Named("trackdata"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Download fetches the raw npy file of the named track.
func (s *Source) Download(ctx context.Context, name string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s.npy", s.baseURL, name)
	s.l.Debug("downloading track", log.String("url", url))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDownload, name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %s", ErrDownload, name, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Path returns the local file name of the track
func (s *Source) Path(name string) string {
	return filepath.Join(s.dir, name+".npy")
}

// Load uses the local copy of the track if present. Otherwise the track is
// downloaded and stored in the configured directory.
func (s *Source) Load(ctx context.Context, name string) (*model.Track, error) {
	if s.dir != "" {
		if data, err := os.ReadFile(s.Path(name)); err == nil {
			s.l.Debug("using local track", log.String("file", s.Path(name)))
			return DecodeBytes(data, name)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	data, err := s.Download(ctx, name)
	if err != nil {
		return nil, err
	}
	track, err := DecodeBytes(data, name)
	if err != nil {
		return nil, err
	}
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(s.Path(name), data, 0o600); err != nil {
			return nil, err
		}
	}
	s.l.Info("downloaded track",
		log.String("track", name),
		log.Int("waypoints", len(track.Center)))
	return track, nil
}
