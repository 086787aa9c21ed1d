package utils

import (
	"ehr-bundle-service/internal/pkg/exceptions"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256Hex(t *testing.T) {
	assert.Equal(t, "0xe3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", SHA256Hex(nil))
	assert.Equal(t, SHA256Hex([]byte("bundle")), SHA256Hex([]byte("bundle")))
	assert.NotEqual(t, SHA256Hex([]byte("bundle-a")), SHA256Hex([]byte("bundle-b")))
}

func TestPayloadEncryption(t *testing.T) {
	key := DeriveKey("archive-secret")
	plaintext := []byte(`{"resourceType":"Bundle","id":"b1"}`)

	t.Run("Round Trip", func(t *testing.T) {
		ciphertext, err := EncryptPayload(key, plaintext)
		require.NoError(t, err)
		assert.NotContains(t, string(ciphertext), "Bundle")

		decrypted, err := DecryptPayload(key, ciphertext)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("Nonce Differs Per Call", func(t *testing.T) {
		first, err := EncryptPayload(key, plaintext)
		require.NoError(t, err)
		second, err := EncryptPayload(key, plaintext)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("Wrong Key", func(t *testing.T) {
		ciphertext, err := EncryptPayload(key, plaintext)
		require.NoError(t, err)

		_, err = DecryptPayload(DeriveKey("other-secret"), ciphertext)
		require.Error(t, err)
		var customErr *exceptions.CustomError
		assert.True(t, errors.As(err, &customErr))
	})

	t.Run("Tampered Ciphertext", func(t *testing.T) {
		ciphertext, err := EncryptPayload(key, plaintext)
		require.NoError(t, err)
		ciphertext[len(ciphertext)-1] ^= 0xff

		_, err = DecryptPayload(key, ciphertext)
		assert.Error(t, err)
	})

	t.Run("Too Short", func(t *testing.T) {
		_, err := DecryptPayload(key, []byte("short"))
		assert.ErrorIs(t, err, ErrCiphertextTooShort)
	})

	t.Run("Invalid Key Size", func(t *testing.T) {
		_, err := EncryptPayload([]byte("short-key"), plaintext)
		assert.Error(t, err)
	})
}

func TestJWT(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		token, err := GenerateJWT("archivist", "secret", 1)
		require.NoError(t, err)

		subject, err := ParseJWT(token, "secret")
		require.NoError(t, err)
		assert.Equal(t, "archivist", subject)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token, err := GenerateJWT("archivist", "secret", 1)
		require.NoError(t, err)

		_, err = ParseJWT(token, "other")
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		token, err := GenerateJWT("archivist", "secret", -1)
		require.NoError(t, err)

		_, err = ParseJWT(token, "secret")
		assert.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseJWT("not-a-token", "secret")
		assert.Error(t, err)
	})
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "2024-03-15 10:30:00 UTC", FormatTimestamp("2024-03-15T10:30:00Z"))
	assert.Equal(t, "2024-03-15 03:30:00 UTC", FormatTimestamp("2024-03-15T10:30:00+07:00"))
	assert.Equal(t, "2024-03-15", FormatTimestamp("2024-03-15"))
	assert.Equal(t, "", FormatTimestamp(""))
}
