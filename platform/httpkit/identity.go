// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// merchantRole is the claim value that grants merchant authority.
const merchantRole = "merchant"

// Identity is the authenticated caller as the handlers see it. The job
// lifecycle endpoints only need to know who the caller is and whether they
// carry merchant authority; the interface hides the Gin context behind that.
type Identity interface {
	// UserID returns the authenticated user's ID.
	UserID() uuid.UUID
	// Roles returns the user's assigned roles.
	Roles() []string
	// HasRole checks if the user has a specific role.
	HasRole(role string) bool
	// IsMerchant reports whether the caller may perform merchant-only
	// operations, such as reactivating a cancelled job.
	IsMerchant() bool
	// IsAuthenticated returns true if the user is authenticated.
	IsAuthenticated() bool
}

type identity struct {
	userID        uuid.UUID
	roles         []string
	authenticated bool
}

func (i *identity) UserID() uuid.UUID { return i.userID }

func (i *identity) Roles() []string { return i.roles }

func (i *identity) HasRole(role string) bool {
	for _, r := range i.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (i *identity) IsMerchant() bool {
	return i.HasRole(merchantRole)
}

func (i *identity) IsAuthenticated() bool { return i.authenticated }

// GetIdentity extracts the Identity from a Gin context. When the auth
// middleware did not run (or rejected the token) an unauthenticated identity
// is returned rather than nil, so callers never need a nil check.
func GetIdentity(c *gin.Context) Identity {
	userID, ok := c.Get(ContextUserIDKey)
	if !ok {
		return &identity{}
	}

	uid, ok := userID.(uuid.UUID)
	if !ok {
		return &identity{}
	}

	return &identity{
		userID:        uid,
		roles:         contextRoles(c),
		authenticated: true,
	}
}

func contextRoles(c *gin.Context) []string {
	raw, ok := c.Get(ContextRolesKey)
	if !ok {
		return nil
	}
	roles, _ := raw.([]string)
	return roles
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the user is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
