package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/logging"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
)

type contextKey int

const identityKey contextKey = iota

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID primitive.ObjectID
	Email  string
	Role   string
	JTI    string
}

func (i Identity) IsAdmin() bool { return i.Role == models.RoleAdmin }

// WithIdentity returns ctx carrying the given identity.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// IdentityFrom extracts the authenticated caller, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey).(Identity)
	return ident, ok
}

type Middleware struct {
	jwt     *JWTManager
	revoker Revoker
}

func NewMiddleware(jwt *JWTManager, revoker Revoker) *Middleware {
	return &Middleware{jwt: jwt, revoker: revoker}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// Authenticate validates the bearer token, rejects revoked tokens and
// attaches the caller's identity to the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "Authorization header missing")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := m.jwt.Parse(tokenStr)
		if err != nil {
			logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Invalid token for %s %s: %v", r.Method, r.URL.Path, err)
			unauthorized(w, "Invalid or expired token")
			return
		}

		if m.revoker != nil {
			revoked, err := m.revoker.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				logging.Logger.Warnf("Event ID: JWT_REVOCATION_CHECK_FAILED, Description: Revocation check failed for %s %s: %v", r.Method, r.URL.Path, err)
			} else if revoked {
				unauthorized(w, "Token has been revoked")
				return
			}
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			unauthorized(w, "Invalid token subject")
			return
		}

		ident := Identity{UserID: userID, Email: claims.Email, Role: claims.Role, JTI: claims.ID}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
	})
}

// RequireRole gates a handler behind a role allow-list. It assumes
// Authenticate already ran.
func (m *Middleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := IdentityFrom(r.Context())
			if !ok {
				unauthorized(w, "Authentication required")
				return
			}
			for _, role := range roles {
				if ident.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"message": "Access forbidden: insufficient permissions"})
		})
	}
}
