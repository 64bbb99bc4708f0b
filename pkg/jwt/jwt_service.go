package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"recipe-book/domain"
	"recipe-book/internal/logging"
)

const (
	PurposeAccess      = "access"
	PurposeVerifyEmail = "verify_email"

	issuer    = "RECIPE-BOOK"
	accessTTL = 2 * time.Hour
)

type (
	JWTService interface {
		GenerateTokenUser(userID string, role string) string
		GetUserIDByToken(token string) (string, string, error)
		GenerateTokenVerifyEmail(userID string, ttl time.Duration) (string, error)
		ValidateTokenVerifyEmail(token string) (string, error)
	}

	// tokenClaims is shared by every token kind; Purpose keeps a confirmation
	// link from being replayed as a bearer token and the other way round.
	tokenClaims struct {
		UserID  string `json:"user_id"`
		Role    string `json:"role,omitempty"`
		Purpose string `json:"purpose"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey []byte
		accessTTL time.Duration
	}
)

func NewJWTService(secretKey string) JWTService {
	return &jwtService{
		secretKey: []byte(secretKey),
		accessTTL: accessTTL,
	}
}

func (j *jwtService) GenerateTokenUser(userID string, role string) string {
	token, err := j.sign(userID, role, PurposeAccess, j.accessTTL)
	if err != nil {
		logging.Error().Err(err).Str("user_id", userID).Msg("failed to sign access token")
	}
	return token
}

// GetUserIDByToken returns the user id and role of a valid access token.
func (j *jwtService) GetUserIDByToken(token string) (string, string, error) {
	claims, err := j.parse(token, PurposeAccess)
	if err != nil {
		return "", "", err
	}
	return claims.UserID, claims.Role, nil
}

func (j *jwtService) GenerateTokenVerifyEmail(userID string, ttl time.Duration) (string, error) {
	return j.sign(userID, "", PurposeVerifyEmail, ttl)
}

// ValidateTokenVerifyEmail returns the user id carried by a confirmation token.
func (j *jwtService) ValidateTokenVerifyEmail(token string) (string, error) {
	claims, err := j.parse(token, PurposeVerifyEmail)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func (j *jwtService) sign(userID, role, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID:  userID,
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
}

func (j *jwtService) parse(token, purpose string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, j.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if !parsed.Valid || claims.Purpose != purpose || claims.UserID == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

func (j *jwtService) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
	}
	return j.secretKey, nil
}
