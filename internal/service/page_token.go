package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const pageTokenIssuer = "pagekit"

// ErrInvalidPageToken is returned when a page token fails verification
var ErrInvalidPageToken = errors.New("invalid page token")

// PageClaims identifies the campaign contact a personalized page is rendered for
type PageClaims struct {
	CampaignID string `json:"cid"`
	jwt.RegisteredClaims
}

// PageTokenSigner issues and verifies the opaque tokens used in /view links
type PageTokenSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewPageTokenSigner returns a signer using HS256. A zero ttl issues tokens that never expire.
func NewPageTokenSigner(secret []byte, ttl time.Duration) (*PageTokenSigner, error) {
	if len(secret) == 0 {
		return nil, errors.New("page token secret is required")
	}
	return &PageTokenSigner{secret: secret, ttl: ttl, now: time.Now}, nil
}

func (s *PageTokenSigner) Sign(campaignID, contactID string) (string, error) {
	now := s.now()
	claims := PageClaims{
		CampaignID: campaignID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   pageTokenIssuer,
			Subject:  contactID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign page token: %w", err)
	}
	return signed, nil
}

// Verify returns the claims of a valid token
func (s *PageTokenSigner) Verify(raw string) (*PageClaims, error) {
	claims := &PageClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(pageTokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidPageToken
	}
	return claims, nil
}
