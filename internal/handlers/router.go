package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/auth"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/metrics"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/realtime"
)

// RouterDeps bundles everything the route table needs.
type RouterDeps struct {
	Auth         *auth.Middleware
	Users        *UserHandler
	Onboarding   *OnboardingHandler
	Catalog      *CatalogHandler
	Bookings     *BookingHandler
	Testimonials *TestimonialHandler
	Offers       *OfferHandler
	Enquiries    *EnquiryHandler
	Messages     *MessageHandler
	Hub          *realtime.Hub
}

// NewRouter wires the full REST surface. Public routes carry no
// middleware; everything else goes through Authenticate, and admin routes
// additionally through the role gate.
func NewRouter(d RouterDeps) *mux.Router {
	r := mux.NewRouter()
	r.Use(metrics.Middleware)

	admin := d.Auth.RequireRole(models.RoleAdmin)
	authed := d.Auth.Authenticate

	// Public surface.
	r.HandleFunc("/auth/register", d.Users.Register).Methods("POST")
	r.HandleFunc("/auth/login", d.Users.Login).Methods("POST")
	r.HandleFunc("/courses", d.Catalog.ListCourses).Methods("GET")
	r.HandleFunc("/courses/featured", d.Catalog.FeaturedCourses).Methods("GET")
	r.HandleFunc("/courses/{id}", d.Catalog.GetCourse).Methods("GET")
	r.HandleFunc("/services", d.Catalog.ListServices).Methods("GET")
	r.HandleFunc("/services/featured", d.Catalog.FeaturedServices).Methods("GET")
	r.HandleFunc("/services/{id}", d.Catalog.GetService).Methods("GET")
	r.HandleFunc("/testimonials", d.Testimonials.Submit).Methods("POST")
	r.HandleFunc("/testimonials", d.Testimonials.ListApproved).Methods("GET")
	r.HandleFunc("/enquiries", d.Enquiries.Submit).Methods("POST")
	r.HandleFunc("/metrics", metrics.Handler().ServeHTTP).Methods("GET")

	// Realtime echo. Joining a room needs only the project id; the
	// broadcast path carries no auth (see the hub).
	r.HandleFunc("/ws", d.Hub.ServeWS)

	// Authenticated surface.
	r.Handle("/auth/logout", authed(http.HandlerFunc(d.Users.Logout))).Methods("POST")
	r.Handle("/users/me", authed(http.HandlerFunc(d.Users.Me))).Methods("GET")
	r.Handle("/users/me", authed(http.HandlerFunc(d.Users.UpdateMe))).Methods("PUT")
	r.Handle("/users/change-password", authed(http.HandlerFunc(d.Users.ChangePassword))).Methods("POST")
	r.Handle("/users", authed(admin(http.HandlerFunc(d.Users.List)))).Methods("GET")

	r.Handle("/client-onboarding", authed(http.HandlerFunc(d.Onboarding.List))).Methods("GET")
	r.Handle("/client-onboarding", authed(http.HandlerFunc(d.Onboarding.Create))).Methods("POST")
	r.Handle("/client-onboarding/stats", authed(admin(http.HandlerFunc(d.Onboarding.Stats)))).Methods("GET")
	r.Handle("/client-onboarding/{id}", authed(http.HandlerFunc(d.Onboarding.Get))).Methods("GET")
	r.Handle("/client-onboarding/{id}", authed(http.HandlerFunc(d.Onboarding.Update))).Methods("PUT")
	r.Handle("/client-onboarding/{id}", authed(admin(http.HandlerFunc(d.Onboarding.Delete)))).Methods("DELETE")
	r.Handle("/client-onboarding/{id}/stage", authed(http.HandlerFunc(d.Onboarding.UpdateStage))).Methods("PATCH")
	r.Handle("/client-onboarding/{id}/payment", authed(http.HandlerFunc(d.Onboarding.UpdatePayment))).Methods("PATCH")

	creatorOrAdmin := d.Auth.RequireRole(models.RoleCreator, models.RoleAdmin)
	r.Handle("/courses", authed(creatorOrAdmin(http.HandlerFunc(d.Catalog.CreateCourse)))).Methods("POST")
	r.Handle("/courses/{id}", authed(creatorOrAdmin(http.HandlerFunc(d.Catalog.UpdateCourse)))).Methods("PUT")
	r.Handle("/courses/{id}", authed(creatorOrAdmin(http.HandlerFunc(d.Catalog.DeleteCourse)))).Methods("DELETE")
	r.Handle("/services", authed(creatorOrAdmin(http.HandlerFunc(d.Catalog.CreateService)))).Methods("POST")
	r.Handle("/services/{id}", authed(creatorOrAdmin(http.HandlerFunc(d.Catalog.UpdateService)))).Methods("PUT")
	r.Handle("/services/{id}", authed(creatorOrAdmin(http.HandlerFunc(d.Catalog.DeleteService)))).Methods("DELETE")

	r.Handle("/bookings", authed(http.HandlerFunc(d.Bookings.Create))).Methods("POST")
	r.Handle("/bookings", authed(http.HandlerFunc(d.Bookings.List))).Methods("GET")
	r.Handle("/bookings/{id}/status", authed(http.HandlerFunc(d.Bookings.UpdateStatus))).Methods("PATCH")

	r.Handle("/testimonials/all", authed(admin(http.HandlerFunc(d.Testimonials.ListAll)))).Methods("GET")
	r.Handle("/testimonials/{id}/approve", authed(admin(http.HandlerFunc(d.Testimonials.Approve)))).Methods("PATCH")
	r.Handle("/testimonials/{id}", authed(admin(http.HandlerFunc(d.Testimonials.Delete)))).Methods("DELETE")

	r.Handle("/offers", authed(admin(http.HandlerFunc(d.Offers.Create)))).Methods("POST")
	r.Handle("/offers", authed(http.HandlerFunc(d.Offers.List))).Methods("GET")
	r.Handle("/offers/assigned", authed(http.HandlerFunc(d.Offers.Assigned))).Methods("GET")
	r.Handle("/offers/{id}/assign", authed(admin(http.HandlerFunc(d.Offers.Assign)))).Methods("POST")
	r.Handle("/offers/{id}", authed(admin(http.HandlerFunc(d.Offers.Delete)))).Methods("DELETE")

	r.Handle("/enquiries", authed(admin(http.HandlerFunc(d.Enquiries.List)))).Methods("GET")
	r.Handle("/enquiries/{id}/handled", authed(admin(http.HandlerFunc(d.Enquiries.MarkHandled)))).Methods("PATCH")

	r.Handle("/conversations", authed(http.HandlerFunc(d.Messages.OpenConversation))).Methods("POST")
	r.Handle("/conversations", authed(http.HandlerFunc(d.Messages.ListConversations))).Methods("GET")
	r.Handle("/conversations/{id}/messages", authed(http.HandlerFunc(d.Messages.SendMessage))).Methods("POST")
	r.Handle("/conversations/{id}/messages", authed(http.HandlerFunc(d.Messages.ListMessages))).Methods("GET")

	return r
}

// EnableCORS allows the configured front-end origin.
func EnableCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
