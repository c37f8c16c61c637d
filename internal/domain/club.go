package domain

// Club is the organization members join. It is built around exactly one
// media variant, so its current, previous and upcoming picks all share T.
type Club[T Variant[T]] struct {
	ID                      int     `json:"id"`
	HeadOfClub              *string `json:"headOfClub,omitempty"`
	MediaOfMonth            *T      `json:"mediaOfMonth,omitempty"`
	PreviousMediaOfTheMonth []T     `json:"previousMediaOfTheMonth"`
	UpcomingMediaOfTheMonth []T     `json:"upcomingMediaOfTheMonth"`
	DiscussionBoardURL      *string `json:"discussionBoardUrl,omitempty"`
}

// Kind returns the media variant the club is built around
func (c Club[T]) Kind() MediaKind {
	var zero T
	return zero.Kind()
}

// HasMediaOfMonth returns true if the club currently features an item
func (c Club[T]) HasMediaOfMonth() bool {
	return c.MediaOfMonth != nil
}
