package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConversationID(t *testing.T) {
	id := NewConversationID()
	assert.True(t, strings.HasPrefix(id, "conv_"))
	assert.True(t, ValidateIDFormat(id, "conv"), "id %q should validate", id)

	parts := strings.SplitN(id, "_", 3)
	require.Len(t, parts, 3)
	assert.Len(t, parts[2], 9)
}

func TestNewConversationID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewConversationID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %q", id)
		seen[id] = struct{}{}
	}
}

func TestGenerateSecureID(t *testing.T) {
	id, err := GenerateSecureID("fb", 12)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "fb_"))
	assert.Len(t, id, len("fb_")+12)
	assert.True(t, ValidateIDFormat(id, "fb"))
}

func TestValidateIDFormat(t *testing.T) {
	assert.True(t, ValidateIDFormat("conv_1712000000000_abc123xyz", "conv"))
	assert.False(t, ValidateIDFormat("conv_", "conv"))
	assert.False(t, ValidateIDFormat("sess_1712000000000_abc", "conv"))
	assert.False(t, ValidateIDFormat("conv_ABC!", "conv"))
	assert.False(t, ValidateIDFormat("", "conv"))
}
