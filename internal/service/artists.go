package service

import (
	"context"
	"log"

	"ticketportal/internal/backend"
	"ticketportal/internal/domain"
	"ticketportal/internal/redis"
)

// ArtistService serves the public artist directory.
type ArtistService struct {
	api   backend.API
	cache redis.ArtistCacheInterface
}

// NewArtistService creates a new ArtistService. cache may be nil.
func NewArtistService(api backend.API, cache redis.ArtistCacheInterface) *ArtistService {
	return &ArtistService{api: api, cache: cache}
}

// ListActive returns active artists matching query by name, bio or genre.
func (s *ArtistService) ListActive(ctx context.Context, query string) ([]domain.Artist, error) {
	artists, err := s.activeArtists(ctx)
	if err != nil {
		return nil, err
	}
	return FilterArtists(artists, query), nil
}

func (s *ArtistService) activeArtists(ctx context.Context) ([]domain.Artist, error) {
	if s.cache != nil {
		cached, err := s.cache.GetArtists(ctx, true)
		if err != nil {
			log.Printf("[CACHE] artist cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	artists, err := s.api.ListArtists(ctx, true)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetArtists(ctx, true, artists); err != nil {
			log.Printf("[CACHE] artist cache write failed: %v", err)
		}
	}
	return artists, nil
}

// FilterArtists matches query against name, short bio and genres.
func FilterArtists(artists []domain.Artist, query string) []domain.Artist {
	return FilterByText(artists, query, func(a domain.Artist) []string {
		fields := make([]string, 0, 2+len(a.Genres))
		fields = append(fields, a.Name, deref(a.ShortBio))
		return append(fields, a.Genres...)
	})
}
