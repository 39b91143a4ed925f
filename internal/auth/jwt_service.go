package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	// AccessTokenExpiry is how long an access token stays valid. Clients
	// decode exp and log themselves out when it passes.
	AccessTokenExpiry = 24 * time.Hour
	// RefreshTokenExpiry is how long a refresh token stays valid.
	RefreshTokenExpiry = 7 * 24 * time.Hour
)

// Claims carried by registry tokens. Role travels in the token so handlers
// can gate admin routes without a lookup; admin actions still re-check the
// database for the latest role.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// JWTService mints and validates HS256 tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a JWT service signing with secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

func (s *JWTService) sign(claims *Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func registeredClaims(expiry time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
}

// GenerateAccessToken mints a day-long access token for the user.
func (s *JWTService) GenerateAccessToken(userID uuid.UUID, role string) (string, error) {
	return s.sign(&Claims{
		UserID:           userID,
		Role:             role,
		RegisteredClaims: registeredClaims(AccessTokenExpiry),
	})
}

// GenerateRefreshToken mints a week-long refresh token. The token ID (JTI)
// is returned separately so the caller can register it in the token store;
// a refresh token whose ID is absent from the store is revoked.
func (s *JWTService) GenerateRefreshToken(userID uuid.UUID, role string) (tokenID string, token string, err error) {
	tokenID = uuid.New().String()
	claims := &Claims{
		UserID:           userID,
		Role:             role,
		RegisteredClaims: registeredClaims(RefreshTokenExpiry),
	}
	claims.ID = tokenID
	token, err = s.sign(claims)
	return tokenID, token, err
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ExtractTokenID returns the JTI of a refresh token.
func (s *JWTService) ExtractTokenID(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", errors.New("token ID not found")
	}
	return claims.ID, nil
}
