package commands

import (
	"time"

	"fitura/backend/internal/auth"
	"fitura/backend/internal/repository/postgres/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

const (
	accessTokenTTL  = 12 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// GenToken issues an access/refresh token pair for a staff user.
func GenToken(claims user.AuthClaims, secret string) (string, string, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(accessTokenTTL).Unix(),
		},
		UserId: claims.ID,
		Role:   claims.Role,
	})
	accessToken, err := access.SignedString([]byte(secret))
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(refreshTokenTTL).Unix(),
		},
		UserId: claims.ID,
		Role:   claims.Role,
	})
	refreshToken, err := refresh.SignedString([]byte(secret))
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return accessToken, refreshToken, nil
}

// VerifyTokens checks a token pair on refresh. The refresh token must still
// be valid; the access token may be expired but must be ours and must belong
// to the same user.
func VerifyTokens(accessToken, refreshToken, secret string) (auth.Claims, auth.Claims, error) {
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}

	var refreshClaims auth.Claims
	if _, err := jwt.ParseWithClaims(refreshToken, &refreshClaims, keyFunc); err != nil {
		return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "parsing refresh token")
	}

	var accessClaims auth.Claims
	if _, err := jwt.ParseWithClaims(accessToken, &accessClaims, keyFunc); err != nil {
		validationErr, ok := err.(*jwt.ValidationError)
		if !ok || validationErr.Errors&jwt.ValidationErrorExpired == 0 {
			return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "parsing access token")
		}
	}

	if accessClaims.UserId != refreshClaims.UserId {
		return auth.Claims{}, auth.Claims{}, errors.New("token pair mismatch")
	}

	return accessClaims, refreshClaims, nil
}
