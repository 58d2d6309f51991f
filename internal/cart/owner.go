package cart

import (
	"strings"

	"github.com/google/uuid"
)

const (
	userOwnerPrefix  = "user:"
	guestOwnerPrefix = "guest:"
)

// UserOwnerID scopes a cart to a signed-in customer.
func UserOwnerID(userID uuid.UUID) string {
	return userOwnerPrefix + userID.String()
}

// GuestOwnerID scopes a cart to an anonymous session token.
func GuestOwnerID(token string) string {
	return guestOwnerPrefix + token
}

// IsGuestOwner reports whether the owner key belongs to an anonymous session.
func IsGuestOwner(ownerID string) bool {
	return strings.HasPrefix(ownerID, guestOwnerPrefix)
}
