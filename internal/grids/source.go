package grids

import (
	"context"

	"github.com/sirupsen/logrus"

	"schedproc/internal"
)

// Fetcher downloads a file's raw content.
type Fetcher interface {
	Download(ctx context.Context, file internal.DriveFile) ([]byte, error)
}

// Source is the read-through grid source: download, decode, cache. Two
// concurrent first accesses may both fetch; the second Put simply wins,
// which is harmless since grids are immutable after decode.
type Source struct {
	fetcher Fetcher
	cache   *Cache
	log     *logrus.Logger
}

func NewSource(fetcher Fetcher, log *logrus.Logger) *Source {
	return &Source{fetcher: fetcher, cache: NewCache(), log: log}
}

func (s *Source) FetchGrid(ctx context.Context, file internal.DriveFile) (internal.Grid, error) {
	if g, ok := s.cache.Get(file.ID); ok {
		s.log.WithField("file", file.Name).Debug("grid cache hit")
		return g, nil
	}

	blob, err := s.fetcher.Download(ctx, file)
	if err != nil {
		return nil, err
	}
	g, err := Decode(file, blob)
	if err != nil {
		return nil, err
	}

	s.cache.Put(file.ID, g)
	s.log.WithField("file", file.Name).Debug("grid fetched and cached")
	return g, nil
}

func (s *Source) ClearCache() {
	s.cache.Clear()
}
