package security

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-gamepedia/internal/logging"
	"go-gamepedia/internal/pkg/cache"
	"go-gamepedia/internal/security/jwt"
	"go-gamepedia/internal/security/rbac"
	"go-gamepedia/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	lg, err := logging.New("debug", "console")
	require.NoError(t, err)
	return lg
}

func newCtx(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func bodyCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var body struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

// 预热缓存后 PermissionService 不需要 DB，直接由缓存供给集合
func seededPermService(t *testing.T, uid string, codes []string) *service.PermissionService {
	t.Helper()
	c := cache.New(time.Minute)
	b, err := json.Marshal(codes)
	require.NoError(t, err)
	require.NoError(t, c.SetEX(context.Background(), "perm:uid:"+uid, string(b), time.Minute))
	return service.NewPermissionService(nil, nil, nil, c)
}

func TestAuthMissingToken(t *testing.T) {
	mgr := jwt.NewManager("0123456789abcdef0123456789abcdef", 3600, "t")
	c, w := newCtx(t)

	Auth(mgr, nil, testLogger(t))(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, -14, bodyCode(t, w)) // AUTH_ERROR
}

func TestAuthInvalidToken(t *testing.T) {
	mgr := jwt.NewManager("0123456789abcdef0123456789abcdef", 3600, "t")
	c, w := newCtx(t)
	c.Request.Header.Set("Authorization", "Bearer not-a-jwt")

	Auth(mgr, nil, testLogger(t))(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, -14, bodyCode(t, w))
}

func TestAuthValidTokenSetsIdentity(t *testing.T) {
	mgr := jwt.NewManager("0123456789abcdef0123456789abcdef", 3600, "t")
	token, err := mgr.Issue(42, "editor", "jti-1")
	require.NoError(t, err)
	c, _ := newCtx(t)
	c.Request.Header.Set("Authorization", "Bearer "+token)

	Auth(mgr, nil, testLogger(t))(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, int64(42), c.GetInt64("user_id"))
	assert.Equal(t, "editor", c.GetString("role_code"))
	assert.Equal(t, "jti-1", c.GetString("jti"))
}

func TestRequirePermAllowsMatch(t *testing.T) {
	svc := seededPermService(t, "42", []string{"hero:edit"})
	c, _ := newCtx(t)
	c.Set("user_id", int64(42))

	RequirePerm(svc, "hero:delete", "hero:edit")(c) // OR 语义

	assert.False(t, c.IsAborted())
}

func TestRequirePermForbidden(t *testing.T) {
	svc := seededPermService(t, "42", []string{"hero:view"})
	c, w := newCtx(t)
	c.Set("user_id", int64(42))

	RequirePerm(svc, "user:delete")(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, -15, bodyCode(t, w)) // FORBIDDEN，与 AUTH_ERROR 必须区分
}

func TestRequirePermSuperAdminBypass(t *testing.T) {
	c, _ := newCtx(t)
	c.Set("user_id", int64(1))

	RequirePerm(nil, "anything:at-all")(c)

	assert.False(t, c.IsAborted())
}

func TestRequirePermUnauthenticated(t *testing.T) {
	c, w := newCtx(t)

	RequirePerm(nil, "hero:edit")(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, -14, bodyCode(t, w))
}

func TestRequireRole(t *testing.T) {
	c, _ := newCtx(t)
	c.Set("user_id", int64(42))
	c.Set("role_code", "content_admin")

	RequireRole(rbac.RoleAdmin, rbac.RoleContentAdmin)(c)
	assert.False(t, c.IsAborted())
}

func TestRequireRoleUnknownCodeNeverPasses(t *testing.T) {
	c, w := newCtx(t)
	c.Set("user_id", int64(42))
	c.Set("role_code", "made-up-role")

	RequireRole(rbac.RoleAdmin, rbac.RoleContentAdmin, rbac.RoleEditor, rbac.RoleUser)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, -15, bodyCode(t, w))
}
