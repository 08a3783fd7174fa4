package trackdata

import (
	"time"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/utils/cache"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/utils/cache/loadercache"
)

// NewCache returns a track cache keyed by track name which loads missing
// tracks via s.
func NewCache(s *Source, expiration time.Duration) cache.Cache[string, model.Track] {
	return loadercache.New(
		loadercache.WithLoader[string, model.Track](s.Load),
		loadercache.WithExpiration[string, model.Track](expiration),
		loadercache.WithLogger[string, model.Track](s.l.Named("cache")),
	)
}
