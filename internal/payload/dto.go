package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/mediaclubs/internal/domain"
)

// SongDTO is a song as sent by the backend
type SongDTO struct {
	ID             string    `json:"id" validate:"required"`
	Title          *string   `json:"title,omitempty"`
	Artist         *string   `json:"artist,omitempty"`
	Writer         *string   `json:"writer,omitempty"`
	Length         *float64  `json:"length,omitempty"` // Minutes
	YearOfCreation *WireYear `json:"yearOfCreation,omitempty"`
}

// AlbumDTO is an album with its track list
type AlbumDTO struct {
	ID             string    `json:"id" validate:"required"`
	Title          *string   `json:"title,omitempty"`
	TrackList      []SongDTO `json:"trackList" validate:"omitempty,dive"`
	YearOfCreation *WireYear `json:"yearOfCreation,omitempty"`
}

// ArtDTO is an art piece; yearOfCreation is when work on it started
type ArtDTO struct {
	ID               string    `json:"id" validate:"required"`
	Title            *string   `json:"title,omitempty"`
	Artist           *string   `json:"artist,omitempty"`
	YearOfCreation   *WireYear `json:"yearOfCreation,omitempty"`
	YearOfCompletion *WireYear `json:"yearOfCompletion,omitempty"`
	Blurb            *string   `json:"blurb,omitempty"`
}

// BookDTO is a book, comic or manga
type BookDTO struct {
	ID             string    `json:"id" validate:"required"`
	ISBN           *string   `json:"isbn,omitempty"`
	Title          *string   `json:"title,omitempty"`
	YearOfCreation *WireYear `json:"yearOfCreation,omitempty"`
	PageCount      *int      `json:"pageCount,omitempty" validate:"omitempty,gte=0"`
	ChapterCount   *int      `json:"chapterCount,omitempty" validate:"omitempty,gte=0"`
	Artist         *string   `json:"artist,omitempty"`
	Author         *string   `json:"author,omitempty"`
}

// MovieDTO is a movie. Older payloads carry the runtime under "lengthOfMovir".
type MovieDTO struct {
	ID             string    `json:"id" validate:"required"`
	Title          *string   `json:"title,omitempty"`
	YearOfCreation *WireYear `json:"yearOfCreation,omitempty"`
	Director       *string   `json:"director,omitempty"`
	Writer         *string   `json:"writer,omitempty"`
	Length         *float64  `json:"length,omitempty"`
	LegacyLength   *float64  `json:"lengthOfMovir,omitempty"`
}

// ClubDTO is a club whose picks are all of media shape M
type ClubDTO[M any] struct {
	ID                      *int             `json:"id" validate:"required"`
	Kind                    domain.MediaKind `json:"kind,omitempty"`
	HeadOfClub              *string          `json:"headOfClub,omitempty"`
	MediaOfMonth            *M               `json:"mediaOfMonth,omitempty"`
	PreviousMediaOfTheMonth []M              `json:"previousMediaOfTheMonth" validate:"omitempty,dive"`
	UpcomingMediaOfTheMonth []M              `json:"upcomingMediaOfTheMonth" validate:"omitempty,dive"`
	DiscussionBoardURL      *string          `json:"discussionBoardUrl,omitempty" validate:"omitempty,url"`
}

// ClubCollectionDTO groups a member's clubs by media variant. List fields
// are written even when empty so [] and null survive a round trip.
type ClubCollectionDTO struct {
	MovieClubs []ClubDTO[MovieDTO] `json:"movieClubs" validate:"omitempty,dive"`
	BookClubs  []ClubDTO[BookDTO]  `json:"bookClubs" validate:"omitempty,dive"`
	AlbumClubs []ClubDTO[AlbumDTO] `json:"albumClubs" validate:"omitempty,dive"`
	ArtClubs   []ClubDTO[ArtDTO]   `json:"artClubs" validate:"omitempty,dive"`
}

// MemberDTO is the root of a member payload
type MemberDTO struct {
	ID             *int              `json:"id" validate:"required"`
	FirstName      *string           `json:"firstName,omitempty"`
	LastName       *string           `json:"lastName,omitempty"`
	ClubCollection ClubCollectionDTO `json:"clubCollection"`
}

// ItemDTO is a kind-tagged media item
type ItemDTO struct {
	Kind  domain.MediaKind `json:"kind" validate:"required"`
	Album *AlbumDTO        `json:"album,omitempty"`
	Song  *SongDTO         `json:"song,omitempty"`
	Art   *ArtDTO          `json:"art,omitempty"`
	Book  *BookDTO         `json:"book,omitempty"`
	Movie *MovieDTO        `json:"movie,omitempty"`
}

// WireYear is a year that the backend may send as a number, a numeric
// string, a date ("2006-01-02") or an RFC 3339 timestamp.
type WireYear int

func (y *WireYear) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '"' {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("year: %w", err)
		}
		*y = WireYear(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("year: %w", err)
	}
	s = strings.TrimSpace(s)

	if n, err := strconv.Atoi(s); err == nil {
		*y = WireYear(n)
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			*y = WireYear(t.Year())
			return nil
		}
	}
	return fmt.Errorf("year: unrecognized value %q", s)
}
