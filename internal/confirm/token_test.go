package confirm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)

	token, expiresAt, err := tm.Issue("928371")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, 2*time.Second)

	assert.NoError(t, tm.Verify(token, "928371"))
	assert.ErrorIs(t, tm.Verify(token, "827361"), ErrInvalidToken)
	assert.ErrorIs(t, tm.Verify("garbage", "928371"), ErrInvalidToken)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	token, _, err := NewTokenManager("a", time.Minute).Issue("1")
	require.NoError(t, err)

	assert.ErrorIs(t, NewTokenManager("b", time.Minute).Verify(token, "1"), ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)
	start := time.Now()
	tm.now = func() time.Time { return start }

	token, _, err := tm.Issue("1")
	require.NoError(t, err)

	tm.now = func() time.Time { return start.Add(2 * time.Minute) }
	assert.ErrorIs(t, tm.Verify(token, "1"), ErrInvalidToken)
}
