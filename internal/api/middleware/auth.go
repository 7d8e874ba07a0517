package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/ranchgame/internal/api/apierr"
	"github.com/mcoot/ranchgame/internal/model"
)

type contextKey string

const playerContextKey contextKey = "player"

// PlayerLookup resolves a secret player key to its player
type PlayerLookup interface {
	Get(ctx context.Context, key string) (*model.Player, error)
}

// PlayerKey authenticates key-holder routes. The secret key travels as a bearer token
// so it never appears in a URL.
func PlayerKey(players PlayerLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := extractToken(r)
			if key == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			player, err := players.Get(r.Context(), key)
			if err != nil {
				if errors.Is(err, model.ErrPlayerNotFound) {
					apierr.WriteError(w, apierr.NewUnauthorizedError())
					return
				}
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), playerContextKey, player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminToken guards operator routes with a bearer token checked against a bcrypt hash.
// With an empty hash every request is refused.
func AdminToken(tokenHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenHash == "" {
				apierr.WriteError(w, apierr.NewForbiddenError("Admin routes are disabled"))
				return
			}

			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)); err != nil {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetPlayer returns the authenticated player from the request context
func GetPlayer(ctx context.Context) *model.Player {
	player, _ := ctx.Value(playerContextKey).(*model.Player)
	return player
}

// MustGetPlayer returns the authenticated player or panics
func MustGetPlayer(ctx context.Context) *model.Player {
	player := GetPlayer(ctx)
	if player == nil {
		panic("no player in context - player key middleware not applied?")
	}
	return player
}
