package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MediaKind distinguishes the media variants a club can be built around
type MediaKind string

const (
	KindMovie MediaKind = "Movie"
	KindBook  MediaKind = "Book"
	KindAlbum MediaKind = "Album"
	KindSong  MediaKind = "Song"
	KindArt   MediaKind = "Art"
)

// Kinds lists every media kind in display order
var Kinds = []MediaKind{KindMovie, KindBook, KindAlbum, KindSong, KindArt}

// Valid returns true for one of the five known kinds
func (k MediaKind) Valid() bool {
	switch k {
	case KindMovie, KindBook, KindAlbum, KindSong, KindArt:
		return true
	default:
		return false
	}
}

// String returns the kind name, or "Unknown" for an invalid kind
func (k MediaKind) String() string {
	if !k.Valid() {
		return "Unknown"
	}
	return string(k)
}

// Placeholders substituted for absent fields in descriptions
const (
	placeholderUnknown = "unknown"
	placeholderAuthor  = "Unknown"
)

// Album is a collection of songs. Artists and length are derived from the
// track list so the backend does not need to store them.
type Album struct {
	ID             string  `json:"id"`
	Title          *string `json:"title,omitempty"`
	TrackList      []Song  `json:"trackList"`
	YearOfCreation *int    `json:"yearOfCreation,omitempty"`
}

// Artists returns the artists featured on the album in first-appearance
// order. Tracks without an artist contribute "unknown".
func (a Album) Artists() []string {
	artists := make([]string, 0, len(a.TrackList))
	for _, song := range a.TrackList {
		artists = append(artists, valueOr(song.Artist, placeholderUnknown))
	}
	return Unique(artists)
}

// Length returns the total album length in minutes; tracks without a length count as zero
func (a Album) Length() float64 {
	var length float64
	for _, song := range a.TrackList {
		length += valueOr(song.Length, 0)
	}
	return length
}

func (a Album) GetID() string    { return a.ID }
func (a Album) GetTitle() string { return valueOr(a.Title, "") }
func (a Album) Kind() MediaKind  { return KindAlbum }

// Equal compares id and title
func (a Album) Equal(other Album) bool {
	return a.ID == other.ID && ptrEqual(a.Title, other.Title)
}

func (a Album) IsMediaOfTheMonth(club Club[Album]) bool { return IsMediaOfTheMonth(a, club) }

func (a Album) Describe() string {
	return fmt.Sprintf("Album: %s {title: %s, artists: [%s], length: %s}",
		a.ID,
		valueOr(a.Title, placeholderUnknown),
		quoteList(a.Artists()),
		formatMinutes(a.Length()),
	)
}

func (a Album) String() string { return a.Describe() }

// Song is a single track, typically part of an album
type Song struct {
	ID     string   `json:"id"`
	Title  *string  `json:"title,omitempty"`
	Artist *string  `json:"artist,omitempty"` // Credited performer
	Writer *string  `json:"writer,omitempty"` // Credited writer; the artist when absent
	Length *float64 `json:"length,omitempty"` // Minutes
	Year   *int     `json:"yearOfCreation,omitempty"`
}

// CreditedWriter returns the writer, falling back to the artist
func (s Song) CreditedWriter() string {
	if s.Writer != nil {
		return *s.Writer
	}
	return valueOr(s.Artist, placeholderUnknown)
}

func (s Song) GetID() string    { return s.ID }
func (s Song) GetTitle() string { return valueOr(s.Title, "") }
func (s Song) Kind() MediaKind  { return KindSong }

// Equal compares id, title and artist
func (s Song) Equal(other Song) bool {
	return s.ID == other.ID && ptrEqual(s.Title, other.Title) && ptrEqual(s.Artist, other.Artist)
}

func (s Song) IsMediaOfTheMonth(club Club[Song]) bool { return IsMediaOfTheMonth(s, club) }

func (s Song) Describe() string {
	return fmt.Sprintf("Song: %s {title: %s, artist: %s}",
		s.ID, valueOr(s.Title, placeholderUnknown), valueOr(s.Artist, placeholderUnknown))
}

func (s Song) String() string { return s.Describe() }

// Art is anything not easily defined as an album, book, song or movie
type Art struct {
	ID            string  `json:"id"`
	Title         *string `json:"title,omitempty"`
	Artist        *string `json:"artist,omitempty"`
	YearStarted   *int    `json:"yearOfCreation,omitempty"`
	YearCompleted *int    `json:"yearOfCompletion,omitempty"`
	Blurb         *string `json:"blurb,omitempty"` // Short note about the piece
}

func (a Art) GetID() string    { return a.ID }
func (a Art) GetTitle() string { return valueOr(a.Title, "") }
func (a Art) Kind() MediaKind  { return KindArt }

// Equal compares id, title and artist
func (a Art) Equal(other Art) bool {
	return a.ID == other.ID && ptrEqual(a.Title, other.Title) && ptrEqual(a.Artist, other.Artist)
}

func (a Art) IsMediaOfTheMonth(club Club[Art]) bool { return IsMediaOfTheMonth(a, club) }

func (a Art) Describe() string {
	return fmt.Sprintf("Art: %s {title: %s, artist: %s}",
		a.ID, valueOr(a.Title, placeholderUnknown), valueOr(a.Artist, placeholderUnknown))
}

func (a Art) String() string { return a.Describe() }

// Book is a written work, including comics and manga
type Book struct {
	ID           string  `json:"id"`
	Title        *string `json:"title,omitempty"`
	Author       *string `json:"author,omitempty"`
	ISBN         *string `json:"isbn,omitempty"`
	PageCount    *int    `json:"pageCount,omitempty"`
	ChapterCount *int    `json:"chapterCount,omitempty"`
	Artist       *string `json:"artist,omitempty"` // Illustrator or mangaka
	Year         *int    `json:"yearOfCreation,omitempty"`
}

func (b Book) GetID() string    { return b.ID }
func (b Book) GetTitle() string { return valueOr(b.Title, "") }
func (b Book) Kind() MediaKind  { return KindBook }

// Equal compares id, title and author
func (b Book) Equal(other Book) bool {
	return b.ID == other.ID && ptrEqual(b.Title, other.Title) && ptrEqual(b.Author, other.Author)
}

func (b Book) IsMediaOfTheMonth(club Club[Book]) bool { return IsMediaOfTheMonth(b, club) }

func (b Book) Describe() string {
	return fmt.Sprintf("Book: %s {title: %s, author: %s, isbn: %s}",
		b.ID, valueOr(b.Title, ""), valueOr(b.Author, placeholderAuthor), valueOr(b.ISBN, ""))
}

func (b Book) String() string { return b.Describe() }

// Movie is any picture that moves
type Movie struct {
	ID       string   `json:"id"`
	Title    *string  `json:"title,omitempty"`
	Year     *int     `json:"yearOfCreation,omitempty"`
	Director *string  `json:"director,omitempty"`
	Writer   *string  `json:"writer,omitempty"`
	Length   *float64 `json:"length,omitempty"` // Minutes
}

func (m Movie) GetID() string    { return m.ID }
func (m Movie) GetTitle() string { return valueOr(m.Title, "") }
func (m Movie) Kind() MediaKind  { return KindMovie }

// Equal compares id, title and release year
func (m Movie) Equal(other Movie) bool {
	return m.ID == other.ID && ptrEqual(m.Title, other.Title) && ptrEqual(m.Year, other.Year)
}

func (m Movie) IsMediaOfTheMonth(club Club[Movie]) bool { return IsMediaOfTheMonth(m, club) }

func (m Movie) Describe() string {
	return fmt.Sprintf("Movie: %s {title: %s, director: %s, writer: %s}",
		m.ID,
		valueOr(m.Title, ""),
		valueOr(m.Director, placeholderAuthor),
		valueOr(m.Writer, placeholderAuthor),
	)
}

func (m Movie) String() string { return m.Describe() }

// quoteList renders names as a quoted list body: "Bob", "unknown"
func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = strconv.Quote(name)
	}
	return strings.Join(quoted, ", ")
}

// formatMinutes renders a length with at least one decimal ("3.0", "12.25")
func formatMinutes(minutes float64) string {
	s := strconv.FormatFloat(minutes, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}
