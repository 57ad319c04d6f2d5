package shared

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetUID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetUID(ctx), "Expected empty uid in original context")

	withUID := SetUID(ctx)
	uid := GetUID(withUID)
	require.NotEmpty(t, uid)

	_, err := uuid.Parse(uid)
	assert.NoError(t, err, "Expected uid to be a UUID")

	assert.Empty(t, GetUID(ctx), "Expected original context to remain unchanged")
}

func TestWithUIDValue(t *testing.T) {
	ctx := WithUIDValue(context.Background(), "incoming-id")
	assert.Equal(t, "incoming-id", GetUID(ctx))
}

func TestGetUIDWithInvalidContextValue(t *testing.T) {
	ctx := context.WithValue(context.Background(), UIDKey, 123)
	assert.Empty(t, GetUID(ctx), "Expected empty uid when context has invalid type")
}

func TestGenerateUIDUniqueness(t *testing.T) {
	const iterations = 1000
	seen := make(map[string]struct{}, iterations)

	for i := 0; i < iterations; i++ {
		id := generateUID()
		_, dup := seen[id]
		require.False(t, dup, "Expected all uids to be unique")
		seen[id] = struct{}{}
	}
}
