package clubs

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/mediaclubs/internal/domain"
)

// Service orchestrates backend client + store operations for members.
type Service struct {
	client domain.MemberClient
	store  domain.Store
	maxAge time.Duration
	logger *slog.Logger
}

// NewService creates a new clubs service. Cached members older than maxAge
// are refetched; a non-positive maxAge keeps them forever.
func NewService(client domain.MemberClient, store domain.Store, maxAge time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, store: store, maxAge: maxAge, logger: logger}
}

// LoadMember returns the member from cache when fresh, otherwise from the backend.
// force skips the cache.
func (s *Service) LoadMember(ctx context.Context, id int, force bool) (*domain.Member, error) {
	if !force && s.store.IsFresh(id, s.maxAge) {
		if m, ok := s.store.GetMember(id); ok {
			s.logger.Debug("cache fresh", "memberID", id)
			return m, nil
		}
	}

	s.logger.Debug("fetching member", "memberID", id, "force", force)
	m, err := s.client.GetMember(ctx, id)
	if err != nil {
		s.logger.Error("failed to fetch member", "error", err, "memberID", id)
		return nil, err
	}
	if err := s.store.SaveMember(m); err != nil {
		s.logger.Error("failed to save member", "error", err, "memberID", id)
	}
	s.logger.Debug("fetched member", "memberID", id, "clubs", m.Clubs.Len())
	return m, nil
}

// Featured returns the current media of the month of every club the member
// belongs to, skipping clubs without one
func Featured(m *domain.Member) []domain.MediaItem {
	var items []domain.MediaItem
	items = appendFeatured(items, m.Clubs.MovieClubs)
	items = appendFeatured(items, m.Clubs.BookClubs)
	items = appendFeatured(items, m.Clubs.AlbumClubs)
	items = appendFeatured(items, m.Clubs.ArtClubs)
	return items
}

func appendFeatured[T domain.Variant[T]](items []domain.MediaItem, clubs []domain.Club[T]) []domain.MediaItem {
	for _, c := range clubs {
		if c.MediaOfMonth != nil {
			items = append(items, domain.NewItem(*c.MediaOfMonth))
		}
	}
	return items
}

// Catalog returns every item referenced by the member's clubs (current,
// previous and upcoming picks), de-duplicated by each variant's key fields
func Catalog(m *domain.Member) []domain.MediaItem {
	var items []domain.MediaItem
	items = appendCatalog(items, m.Clubs.MovieClubs)
	items = appendCatalog(items, m.Clubs.BookClubs)
	items = appendCatalog(items, m.Clubs.AlbumClubs)
	items = appendCatalog(items, m.Clubs.ArtClubs)
	return items
}

func appendCatalog[T domain.Variant[T]](items []domain.MediaItem, clubs []domain.Club[T]) []domain.MediaItem {
	var seen []T
	add := func(v T) {
		for _, s := range seen {
			if s.Equal(v) {
				return
			}
		}
		seen = append(seen, v)
		items = append(items, domain.NewItem(v))
	}

	for _, c := range clubs {
		if c.MediaOfMonth != nil {
			add(*c.MediaOfMonth)
		}
		for _, v := range c.PreviousMediaOfTheMonth {
			add(v)
		}
		for _, v := range c.UpcomingMediaOfTheMonth {
			add(v)
		}
	}
	return items
}

// FeaturedIn returns the IDs of the member's clubs whose media of the month
// equals item. Song items never match, since members hold no song clubs.
func FeaturedIn(m *domain.Member, item domain.MediaItem) []int {
	switch item.Kind {
	case domain.KindMovie:
		return clubsFeaturing(m.Clubs.MovieClubs, item.Movie)
	case domain.KindBook:
		return clubsFeaturing(m.Clubs.BookClubs, item.Book)
	case domain.KindAlbum:
		return clubsFeaturing(m.Clubs.AlbumClubs, item.Album)
	case domain.KindArt:
		return clubsFeaturing(m.Clubs.ArtClubs, item.Art)
	default:
		return nil
	}
}

func clubsFeaturing[T domain.Variant[T]](clubs []domain.Club[T], v *T) []int {
	if v == nil {
		return nil
	}
	var ids []int
	for _, c := range clubs {
		if domain.IsMediaOfTheMonth(*v, c) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
