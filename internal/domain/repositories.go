package domain

import (
	"context"
)

// MemberClient provides access to members stored on the backend
type MemberClient interface {
	// GetMember returns the member with all of their clubs
	GetMember(ctx context.Context, id int) (*Member, error)
}
