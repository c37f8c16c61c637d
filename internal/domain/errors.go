package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrVariantMismatch indicates two different media variants were mixed,
	// either in a comparison or inside one club
	ErrVariantMismatch = errors.New("media variant mismatch")

	// ErrMissingID indicates a media item without its identifier
	ErrMissingID = errors.New("media item has no id")

	// ErrUnknownKind indicates a media kind tag outside the known set
	ErrUnknownKind = errors.New("unknown media kind")

	// ErrMemberNotFound indicates the requested member does not exist
	ErrMemberNotFound = errors.New("member not found")

	// ErrClubNotFound indicates the requested club does not exist
	ErrClubNotFound = errors.New("club not found")

	// ErrServerOffline indicates the backend is unreachable
	ErrServerOffline = errors.New("backend is unreachable")

	// ErrAuthFailed indicates authentication failed
	ErrAuthFailed = errors.New("authentication token is invalid")
)
