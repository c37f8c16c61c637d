package domain

import "fmt"

// Member is a user of the app and the clubs they belong to
type Member struct {
	ID        int            `json:"id"`
	FirstName *string        `json:"firstName,omitempty"`
	LastName  *string        `json:"lastName,omitempty"`
	Clubs     ClubCollection `json:"clubCollection"`
}

// DisplayName joins the available name parts, falling back to the member ID
func (m Member) DisplayName() string {
	switch {
	case m.FirstName != nil && m.LastName != nil:
		return *m.FirstName + " " + *m.LastName
	case m.FirstName != nil:
		return *m.FirstName
	case m.LastName != nil:
		return *m.LastName
	default:
		return fmt.Sprintf("Member %d", m.ID)
	}
}

// ClubCollection holds all of a member's clubs, one list per media variant
type ClubCollection struct {
	MovieClubs []Club[Movie] `json:"movieClubs"`
	BookClubs  []Club[Book]  `json:"bookClubs"`
	AlbumClubs []Club[Album] `json:"albumClubs"`
	ArtClubs   []Club[Art]   `json:"artClubs"`
}

// Len returns the number of clubs across all variants
func (c ClubCollection) Len() int {
	return len(c.MovieClubs) + len(c.BookClubs) + len(c.AlbumClubs) + len(c.ArtClubs)
}
