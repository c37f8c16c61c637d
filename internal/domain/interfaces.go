package domain

// Media is the common API shared by every media variant.
// Album, Song, Art, Book and Movie implement this interface directly.
type Media interface {
	// GetID returns the identifier assigned by the backend
	GetID() string

	// GetTitle returns the display title ("" when the backend sent none)
	GetTitle() string

	// Kind returns the variant tag
	Kind() MediaKind

	// Describe returns a human-readable description. It never fails:
	// absent fields render as fixed placeholders.
	Describe() string
}

// Variant constrains a type parameter to exactly one media variant.
// Club[T] uses it so that every item a club references shares one variant.
type Variant[T any] interface {
	Album | Song | Art | Book | Movie
	Media

	// Equal compares the variant's key fields only
	Equal(other T) bool
}

// IsMediaOfTheMonth reports whether item is the club's current pick.
// A club without a current pick never matches.
func IsMediaOfTheMonth[T Variant[T]](item T, club Club[T]) bool {
	if club.MediaOfMonth == nil {
		return false
	}
	return item.Equal(*club.MediaOfMonth)
}
