package domain

import "fmt"

// MediaItem is a tagged union over the five media variants. Exactly one of
// the variant pointers is set, and it matches Kind.
type MediaItem struct {
	Kind  MediaKind `json:"kind"`
	Album *Album    `json:"album,omitempty"`
	Song  *Song     `json:"song,omitempty"`
	Art   *Art      `json:"art,omitempty"`
	Book  *Book     `json:"book,omitempty"`
	Movie *Movie    `json:"movie,omitempty"`
}

func NewAlbumItem(a Album) MediaItem { return MediaItem{Kind: KindAlbum, Album: &a} }
func NewSongItem(s Song) MediaItem   { return MediaItem{Kind: KindSong, Song: &s} }
func NewArtItem(a Art) MediaItem     { return MediaItem{Kind: KindArt, Art: &a} }
func NewBookItem(b Book) MediaItem   { return MediaItem{Kind: KindBook, Book: &b} }
func NewMovieItem(m Movie) MediaItem { return MediaItem{Kind: KindMovie, Movie: &m} }

// NewItem wraps any variant value in a MediaItem
func NewItem[T Variant[T]](v T) MediaItem {
	switch m := any(v).(type) {
	case Album:
		return NewAlbumItem(m)
	case Song:
		return NewSongItem(m)
	case Art:
		return NewArtItem(m)
	case Book:
		return NewBookItem(m)
	default:
		return NewMovieItem(any(v).(Movie))
	}
}

// Media returns the wrapped variant, or nil if the tag has no matching payload
func (i MediaItem) Media() Media {
	switch i.Kind {
	case KindAlbum:
		if i.Album != nil {
			return *i.Album
		}
	case KindSong:
		if i.Song != nil {
			return *i.Song
		}
	case KindArt:
		if i.Art != nil {
			return *i.Art
		}
	case KindBook:
		if i.Book != nil {
			return *i.Book
		}
	case KindMovie:
		if i.Movie != nil {
			return *i.Movie
		}
	}
	return nil
}

// Validate checks that the tag is known, its payload is present and alone,
// and the payload carries an id
func (i MediaItem) Validate() error {
	if !i.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, string(i.Kind))
	}
	set := 0
	for _, present := range []bool{i.Album != nil, i.Song != nil, i.Art != nil, i.Book != nil, i.Movie != nil} {
		if present {
			set++
		}
	}
	if set != 1 || i.Media() == nil {
		return fmt.Errorf("%w: item tagged %s carries %d payloads", ErrVariantMismatch, i.Kind, set)
	}
	if i.GetID() == "" {
		return fmt.Errorf("%w: %s", ErrMissingID, i.Kind)
	}
	return nil
}

func (i MediaItem) GetID() string {
	if m := i.Media(); m != nil {
		return m.GetID()
	}
	return ""
}

func (i MediaItem) GetTitle() string {
	if m := i.Media(); m != nil {
		return m.GetTitle()
	}
	return ""
}

// Describe delegates to the wrapped variant. An empty item describes itself
// as "<Kind>: <empty>" rather than failing.
func (i MediaItem) Describe() string {
	if m := i.Media(); m != nil {
		return m.Describe()
	}
	return fmt.Sprintf("%s: <empty>", i.Kind)
}

func (i MediaItem) String() string { return i.Describe() }

// Equal compares two items by their variant's key fields. Items of different
// kinds are not comparable and return ErrVariantMismatch.
func (i MediaItem) Equal(other MediaItem) (bool, error) {
	if err := i.Validate(); err != nil {
		return false, err
	}
	if err := other.Validate(); err != nil {
		return false, err
	}
	if i.Kind != other.Kind {
		return false, fmt.Errorf("%w: cannot compare %s with %s", ErrVariantMismatch, i.Kind, other.Kind)
	}
	switch i.Kind {
	case KindAlbum:
		return i.Album.Equal(*other.Album), nil
	case KindSong:
		return i.Song.Equal(*other.Song), nil
	case KindArt:
		return i.Art.Equal(*other.Art), nil
	case KindBook:
		return i.Book.Equal(*other.Book), nil
	default:
		return i.Movie.Equal(*other.Movie), nil
	}
}
