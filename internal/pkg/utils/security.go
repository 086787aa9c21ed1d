package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/exceptions"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/chacha20poly1305"
)

var ErrCiphertextTooShort = errors.New("ciphertext too short")

func GenerateJWT(subject, secret string, expTimeInHour int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expTimeInHour) * time.Hour)),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", exceptions.WrapWithError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevAuthSigningMethod)
	}
	return tokenString, nil
}

// ParseJWT verifies an HS256 token and returns its subject.
func ParseJWT(tokenString, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, exceptions.WrapWithoutError(constvars.StatusUnauthorized, constvars.ErrClientInvalidAPIKeyOrToken, constvars.ErrDevAuthSigningMethod)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", exceptions.ErrTokenInvalidOrExpired(err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return claims.Subject, nil
}

// SHA256Hex returns the 0x-prefixed hex sha256 digest of data.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return constvars.ArchiveDigestPrefix + hex.EncodeToString(sum[:])
}

// DeriveKey stretches an arbitrary secret into a 32 byte key.
func DeriveKey(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}

// EncryptPayload seals plaintext with XChaCha20-Poly1305. The random nonce is
// prepended to the returned ciphertext.
func EncryptPayload(key, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, exceptions.ErrEncryptPayload(err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, exceptions.ErrEncryptPayload(err)
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

func DecryptPayload(key, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, exceptions.ErrDecryptPayload(err)
	}
	if len(ciphertext) < aead.NonceSize()+aead.Overhead() {
		return nil, exceptions.ErrDecryptPayload(ErrCiphertextTooShort)
	}

	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, exceptions.ErrDecryptPayload(err)
	}
	return plaintext, nil
}
