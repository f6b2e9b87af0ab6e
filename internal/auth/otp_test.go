package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPStore_GenerateAndVerify(t *testing.T) {
	store := NewOTPStore()

	code, err := store.Generate("9876543210")
	require.NoError(t, err)
	assert.Len(t, code, otpLength)

	assert.True(t, store.Verify("9876543210", code))
	assert.False(t, store.Verify("9876543210", code), "a correct code is consumed")
}

func TestOTPStore_UnknownPhone(t *testing.T) {
	store := NewOTPStore()
	assert.False(t, store.Verify("9876543210", "123456"))
}

func TestOTPStore_GenerateReplacesPendingCode(t *testing.T) {
	store := NewOTPStore()

	first, err := store.Generate("9876543210")
	require.NoError(t, err)
	second, err := store.Generate("9876543210")
	require.NoError(t, err)

	if first != second {
		assert.False(t, store.Verify("9876543210", first))
	}
	assert.True(t, store.Verify("9876543210", second))
}

func TestOTPStore_ExpiredCodeIsRejected(t *testing.T) {
	store := NewOTPStore()
	current := time.Now()
	store.now = func() time.Time { return current }

	code, err := store.Generate("9876543210")
	require.NoError(t, err)

	current = current.Add(otpTTL + time.Second)
	assert.False(t, store.Verify("9876543210", code))

	// The expired entry is gone, not just rejected.
	current = current.Add(-2 * otpTTL)
	assert.False(t, store.Verify("9876543210", code))
}

func TestOTPStore_TooManyWrongGuesses(t *testing.T) {
	store := NewOTPStore()

	code, err := store.Generate("9876543210")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	for i := 0; i < otpMaxAttempts; i++ {
		assert.False(t, store.Verify("9876543210", wrong))
	}
	assert.False(t, store.Verify("9876543210", code), "the code is invalidated after too many wrong guesses")
}

func TestHashAndCheckPIN(t *testing.T) {
	hash, err := HashPIN("482913")
	require.NoError(t, err)
	assert.NotEqual(t, "482913", hash)

	assert.True(t, CheckPIN(hash, "482913"))
	assert.False(t, CheckPIN(hash, "482914"))
	assert.False(t, CheckPIN("not-a-hash", "482913"))
}
