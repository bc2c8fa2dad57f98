package utils

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("fake-jpeg"))

	img, err := DecodeDataURL("data:image/jpeg;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.ContentType)
	assert.Equal(t, ".jpg", img.Ext)
	assert.Equal(t, []byte("fake-jpeg"), img.Data)

	_, err = DecodeDataURL("not-a-data-url")
	assert.Error(t, err)
	_, err = DecodeDataURL("data:text/plain;base64," + payload)
	assert.Error(t, err)
	_, err = DecodeDataURL("data:image/png;base64,!!!")
	assert.Error(t, err)
}

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	tok, exp, err := GenerateJWT(secret, "user-1", "a@b.co", time.Hour)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := ParseJWT(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.co", claims.Email)

	_, err = ParseJWT([]byte("other"), tok)
	assert.Error(t, err)

	expired, _, _ := GenerateJWT(secret, "user-1", "a@b.co", -time.Minute)
	_, err = ParseJWT(secret, expired)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	h, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", h))
	assert.False(t, CheckPasswordHash("wrong horse", h))
}

func TestBMI(t *testing.T) {
	b, err := CalculateBMI(180, 81)
	require.NoError(t, err)
	assert.Equal(t, 25.0, b.Value)
	assert.Equal(t, "Overweight", b.Category)

	_, err = CalculateBMI(0, 70)
	assert.Error(t, err)
}

func TestGenerateRandomToken(t *testing.T) {
	tok := GenerateRandomToken(6)
	assert.Len(t, tok, 6)
	assert.NotEqual(t, tok, GenerateRandomToken(6))
}
