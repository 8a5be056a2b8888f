package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/echoplay/server/internal/domain"
	"github.com/echoplay/server/internal/repository"
	"github.com/echoplay/server/pkg/logger"
)

// Per-category result caps.
const (
	searchUserLimit     = 5
	searchCategoryLimit = 10
)

// SearchFilter selects which categories a search touches. The zero value
// (no flag set) means all categories; setting any flag turns the filter
// into an allow-list.
type SearchFilter struct {
	Users     bool
	Playlists bool
	Albums    bool
	Songs     bool
	Podcasts  bool
}

func (f SearchFilter) anySet() bool {
	return f.Users || f.Playlists || f.Albums || f.Songs || f.Podcasts
}

// SearchResult groups the per-category hits of one query.
type SearchResult struct {
	Users     []*domain.User     `json:"users,omitempty"`
	Playlists []*domain.Playlist `json:"playlists,omitempty"`
	Albums    []*domain.Playlist `json:"albums,omitempty"`
	Songs     []*domain.Audio    `json:"songs,omitempty"`
	Podcasts  []*domain.Audio    `json:"podcasts,omitempty"`
}

// SearchService runs the selected category queries concurrently and
// merges the results. A failure in any category fails the whole search.
type SearchService struct {
	searchRepo repository.SearchRepository
	log        logger.Logger
}

// NewSearchService creates the search service.
func NewSearchService(searchRepo repository.SearchRepository, log logger.Logger) *SearchService {
	return &SearchService{searchRepo: searchRepo, log: log}
}

// Search matches the query against the selected categories. The match is
// a case-insensitive substring on name or title; visibility is enforced
// inside each category query for the given principal.
func (s *SearchService) Search(ctx context.Context, p domain.Principal, query string, filter SearchFilter) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	if !filter.anySet() {
		filter = SearchFilter{Users: true, Playlists: true, Albums: true, Songs: true, Podcasts: true}
	}

	result := &SearchResult{}
	g, gctx := errgroup.WithContext(ctx)

	if filter.Users {
		g.Go(func() error {
			users, err := s.searchRepo.SearchUsers(gctx, query, searchUserLimit)
			if err != nil {
				return err
			}
			result.Users = users
			return nil
		})
	}
	if filter.Playlists {
		g.Go(func() error {
			playlists, err := s.searchRepo.SearchPlaylists(gctx, p, query, false, searchCategoryLimit)
			if err != nil {
				return err
			}
			result.Playlists = playlists
			return nil
		})
	}
	if filter.Albums {
		g.Go(func() error {
			albums, err := s.searchRepo.SearchPlaylists(gctx, p, query, true, searchCategoryLimit)
			if err != nil {
				return err
			}
			result.Albums = albums
			return nil
		})
	}
	if filter.Songs {
		g.Go(func() error {
			songs, err := s.searchRepo.SearchAudios(gctx, p, query, false, searchCategoryLimit)
			if err != nil {
				return err
			}
			result.Songs = songs
			return nil
		})
	}
	if filter.Podcasts {
		g.Go(func() error {
			podcasts, err := s.searchRepo.SearchAudios(gctx, p, query, true, searchCategoryLimit)
			if err != nil {
				return err
			}
			result.Podcasts = podcasts
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
