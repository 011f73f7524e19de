package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionCookieName = "access_token"

	// tokenTTL is the validity window of a freshly issued session token.
	tokenTTL = 8 * time.Hour

	// refreshThreshold triggers transparent reissue: any authenticated
	// request whose token has less than this remaining gets a new cookie.
	refreshThreshold = 4 * time.Hour
)

func issueToken(userID int, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseToken(tokenString string, secret []byte) (int, time.Time, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return 0, time.Time{}, err
	}
	if !token.Valid {
		return 0, time.Time{}, errors.New("invalid token")
	}

	userID, err := strconv.Atoi(strings.TrimSpace(claims.Subject))
	if err != nil || userID < 1 {
		return 0, time.Time{}, errors.New("invalid subject")
	}
	if claims.ExpiresAt == nil {
		return 0, time.Time{}, errors.New("missing expiry")
	}
	return userID, claims.ExpiresAt.Time, nil
}

// sessionToken extracts the credential from the session cookie, falling back
// to an Authorization bearer header.
func sessionToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return "", errors.New("missing credentials")
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}

func setSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(tokenTTL / time.Second),
	})
}

func clearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// RequireAuth validates the session token, injects the subject into the
// request context, and transparently reissues the cookie when the token is
// close to expiry. Reissue is best-effort: a failure there never affects the
// request outcome.
func RequireAuth(jwtSecret string, cookieSecure bool) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := sessionToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unable to authenticate user")
				return
			}

			userID, expiresAt, err := parseToken(tokenString, secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unable to authenticate user")
				return
			}

			if time.Until(expiresAt) < refreshThreshold {
				if refreshed, err := issueToken(userID, secret, tokenTTL); err == nil {
					setSessionCookie(w, refreshed, cookieSecure)
				}
			}

			ctx := contextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
