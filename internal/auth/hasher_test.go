package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solivera/gatekeeper/internal/auth"
)

func TestHashAndVerify(t *testing.T) {
	h := auth.NewHasher()
	ctx := context.Background()

	digest, err := h.Hash(ctx, "Str0ng!Pass")
	require.NoError(t, err)
	require.NotEqual(t, "Str0ng!Pass", digest)

	ok, err := h.Verify(ctx, "Str0ng!Pass", digest)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.Verify(ctx, "wrong", digest)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashDigestIsSelfDescribing(t *testing.T) {
	h := auth.NewHasher()

	digest, err := h.Hash(context.Background(), "Str0ng!Pass")
	require.NoError(t, err)
	// bcrypt digests carry version, cost and salt inline.
	require.True(t, strings.HasPrefix(digest, "$2a$12$"), "unexpected digest format: %s", digest)
}

func TestVerifyGarbageDigest(t *testing.T) {
	h := auth.NewHasher()

	ok, err := h.Verify(context.Background(), "whatever", "not-a-digest")
	require.Error(t, err)
	require.False(t, ok)
}
