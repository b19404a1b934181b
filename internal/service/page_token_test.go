package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageTokenSigner(t *testing.T) {
	_, err := NewPageTokenSigner(nil, 0)
	require.Error(t, err)

	signer, err := NewPageTokenSigner([]byte("secret"), time.Hour)
	require.NoError(t, err)

	token, err := signer.Sign("camp1", "contact1")
	require.NoError(t, err)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "camp1", claims.CampaignID)
	assert.Equal(t, "contact1", claims.Subject)

	t.Run("wrong secret", func(t *testing.T) {
		other, _ := NewPageTokenSigner([]byte("other"), time.Hour)
		_, err := other.Verify(token)
		assert.True(t, errors.Is(err, ErrInvalidPageToken))
	})

	t.Run("expired", func(t *testing.T) {
		signer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { signer.now = time.Now }()
		_, err := signer.Verify(token)
		assert.True(t, errors.Is(err, ErrInvalidPageToken))
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, PageClaims{
			CampaignID:       "camp1",
			RegisteredClaims: jwt.RegisteredClaims{Issuer: pageTokenIssuer, Subject: "contact1"},
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = signer.Verify(raw)
		assert.True(t, errors.Is(err, ErrInvalidPageToken))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := signer.Verify("not-a-token")
		assert.True(t, errors.Is(err, ErrInvalidPageToken))
	})
}
