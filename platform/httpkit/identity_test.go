package httpkit

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func testContext(userID uuid.UUID, roles []string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(ContextUserIDKey, userID)
	c.Set(ContextRolesKey, roles)
	return c
}

func TestIdentityMerchantAuthority(t *testing.T) {
	id := GetIdentity(testContext(uuid.New(), []string{"employee", "merchant"}))
	if !id.IsAuthenticated() {
		t.Fatalf("expected authenticated identity")
	}
	if !id.IsMerchant() {
		t.Fatalf("merchant role must grant merchant authority")
	}

	id = GetIdentity(testContext(uuid.New(), []string{"employee"}))
	if id.IsMerchant() {
		t.Fatalf("employee-only identity must not carry merchant authority")
	}
}

func TestGetIdentityWithoutAuthContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	id := GetIdentity(c)
	if id.IsAuthenticated() {
		t.Fatalf("expected unauthenticated identity when middleware did not run")
	}
	if id.IsMerchant() {
		t.Fatalf("unauthenticated identity must not carry merchant authority")
	}
}
