package domain

import "time"

// Store handles the local member cache (BoltDB + memory).
type Store interface {
	GetMember(id int) (*Member, bool)
	SaveMember(m *Member) error

	// IsFresh reports whether the member was saved less than maxAge ago
	IsFresh(id int, maxAge time.Duration) bool

	InvalidateMember(id int)
	InvalidateAll()

	Close() error
}
