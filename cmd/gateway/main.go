package main

import (
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/auth"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/config"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/logging"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
)

// The gateway fronts the marketplace API: it validates the bearer token,
// enforces a per-route role allow-list and forwards the caller's identity
// as headers. The API re-checks everything; the gateway only fails fast.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error:", err)
	}

	logging.Init("marketplace-gateway", "logs/gateway.log")

	jwtManager := auth.NewJWTManager(cfg.JWTSecret)
	proxy := reverseProxyURL(cfg.APIURL)

	srv := &http.Server{
		Addr:         cfg.GatewayAddr,
		Handler:      enableCORS(cfg.AllowedOrigin, newGatewayMux(jwtManager, proxy)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logging.Logger.Infof("Event ID: GATEWAY_START, Description: Gateway listening on %s", cfg.GatewayAddr)
	log.Fatal(srv.ListenAndServe())
}

// newGatewayMux builds the route table over the backend handler. Exact
// patterns cover the collection endpoints and the trailing-slash patterns
// cover everything nested beneath them.
func newGatewayMux(jwtManager *auth.JWTManager, proxy http.Handler) *http.ServeMux {
	allRoles := []string{models.RoleAdmin, models.RoleCreator, models.RoleClient}
	adminOnly := []string{models.RoleAdmin}
	creatorOrAdmin := []string{models.RoleAdmin, models.RoleCreator}

	mux := http.NewServeMux()

	// Public routes pass through untouched.
	mux.Handle("/auth/", proxy)
	mux.Handle("/testimonials", proxy)
	mux.Handle("/enquiries", proxy)
	mux.Handle("/ws", proxy)

	// Catalog trees allow reads without a token; writes need a creator or
	// admin role.
	mux.Handle("/courses", publicReads(jwtManager, proxy, creatorOrAdmin))
	mux.Handle("/courses/", publicReads(jwtManager, proxy, creatorOrAdmin))
	mux.Handle("/services", publicReads(jwtManager, proxy, creatorOrAdmin))
	mux.Handle("/services/", publicReads(jwtManager, proxy, creatorOrAdmin))

	// Moderation and handling live under the public collections.
	mux.Handle("/testimonials/", publicReads(jwtManager, proxy, adminOnly))
	mux.Handle("/enquiries/", authMiddleware(jwtManager, proxy, adminOnly))

	mux.Handle("/client-onboarding", authMiddleware(jwtManager, proxy, allRoles))
	mux.Handle("/client-onboarding/", authMiddleware(jwtManager, proxy, allRoles))
	mux.Handle("/users/", authMiddleware(jwtManager, proxy, allRoles))
	mux.Handle("/users", authMiddleware(jwtManager, proxy, adminOnly))
	mux.Handle("/bookings", authMiddleware(jwtManager, proxy, allRoles))
	mux.Handle("/bookings/", authMiddleware(jwtManager, proxy, allRoles))
	mux.Handle("/offers", authMiddleware(jwtManager, proxy, allRoles))
	mux.Handle("/offers/", authMiddleware(jwtManager, proxy, allRoles))
	mux.Handle("/conversations", authMiddleware(jwtManager, proxy, allRoles))
	mux.Handle("/conversations/", authMiddleware(jwtManager, proxy, allRoles))

	return mux
}

func reverseProxyURL(target string) http.Handler {
	parsed, err := url.Parse(target)
	if err != nil {
		log.Fatal("Invalid API_URL:", err)
	}
	return httputil.NewSingleHostReverseProxy(parsed)
}

// publicReads forwards GET requests untouched and gates every other
// method behind the role allow-list. The API applies its own checks to
// the reads it restricts.
func publicReads(jwtManager *auth.JWTManager, next http.Handler, writeRoles []string) http.Handler {
	gated := authMiddleware(jwtManager, next, writeRoles)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}
		gated.ServeHTTP(w, r)
	})
}

func authMiddleware(jwtManager *auth.JWTManager, next http.Handler, allowedRoles []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		claims, err := jwtManager.Parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		allowed := false
		for _, role := range allowedRoles {
			if claims.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
			return
		}

		r.Header.Set("X-User-Id", claims.UserID)
		r.Header.Set("X-User-Email", claims.Email)
		r.Header.Set("X-User-Role", claims.Role)
		next.ServeHTTP(w, r)
	})
}

func enableCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
