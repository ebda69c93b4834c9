package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-0123456789"

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := NewManager(testSecret, 3600, "gamepedia")
	token, err := m.Issue(42, "editor", "jti-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "editor", claims.RoleCode)
	assert.Equal(t, "jti-1", claims.JTI)
	assert.Equal(t, "gamepedia", claims.Issuer)
}

func TestVerifyExpired(t *testing.T) {
	// 负有效期：签发即过期
	m := NewManager(testSecret, -60, "gamepedia")
	token, err := m.Issue(1, "admin", "jti-2")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyOpaqueFailures(t *testing.T) {
	m := NewManager(testSecret, 3600, "gamepedia")
	token, err := m.Issue(7, "user", "jti-3")
	require.NoError(t, err)

	// 篡改、错密钥、乱输入：错误不可区分
	other := NewManager("another-secret-another-secret", 3600, "gamepedia")
	for _, bad := range []string{token + "x", "not.a.token", ""} {
		_, err := m.Verify(bad)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeWithoutVerify(t *testing.T) {
	m := NewManager(testSecret, -60, "gamepedia")
	token, err := m.Issue(9, "content_admin", "jti-4")
	require.NoError(t, err)

	// 已过期的令牌 Verify 拒绝，但 Decode 仍可读出载荷
	_, err = m.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	claims, err := m.Decode(token)
	require.NoError(t, err)
	assert.EqualValues(t, 9, claims.UserID)
	assert.Equal(t, "content_admin", claims.RoleCode)
}
