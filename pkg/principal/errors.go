package principal

import "errors"

var (
	// ErrUnauthenticated is returned when a credential does not resolve to
	// an active principal. Unknown, expired and revoked credentials are
	// deliberately indistinguishable.
	ErrUnauthenticated = errors.New("principal: unauthenticated")

	// ErrUserNotFound is returned by user directories for unknown IDs.
	ErrUserNotFound = errors.New("principal: user not found")
)
