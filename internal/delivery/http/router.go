package http

import (
	"net/http"

	"nightingale/internal/delivery/http/handler"
	"nightingale/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	AuditLog  *handler.AuditLogHandler
	Post      *handler.PostHandler
	Comment   *handler.CommentHandler
	Reaction  *handler.ReactionHandler
	Hospital  *handler.HospitalHandler
	Review    *handler.ReviewHandler
	Rating    *handler.RatingHandler
	Directory *handler.DirectoryHandler
}

type Middlewares struct {
	Auth      *middleware.AuthMiddleware
	CORS      *middleware.CORSMiddleware
	Recovery  *middleware.RecoveryMiddleware
	Logging   *middleware.LoggingMiddleware
	Metrics   *middleware.MetricsMiddleware
	RateLimit *middleware.RateLimiter
}

type Router struct {
	router      *mux.Router
	handlers    Handlers
	middlewares Middlewares
}

func NewRouter(handlers Handlers, middlewares Middlewares) *Router {
	return &Router{
		router:      mux.NewRouter(),
		handlers:    handlers,
		middlewares: middlewares,
	}
}

func (r *Router) Setup() http.Handler {
	h := r.handlers
	m := r.middlewares

	// Health check and metrics
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	r.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// User routes (public)
	users := r.router.PathPrefix("/users").Subrouter()
	users.Handle("/register", m.RateLimit.Handle(http.HandlerFunc(h.Auth.Register))).Methods(http.MethodPost)
	users.Handle("/login", m.RateLimit.Handle(http.HandlerFunc(h.Auth.Login))).Methods(http.MethodPost)
	users.HandleFunc("/refresh-token", h.Auth.RefreshToken).Methods(http.MethodPost)

	// User routes (protected)
	usersProtected := r.router.PathPrefix("/users").Subrouter()
	usersProtected.Use(m.Auth.Authenticate)
	usersProtected.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)
	usersProtected.HandleFunc("/me", h.User.GetCurrentUser).Methods(http.MethodGet)
	usersProtected.HandleFunc("/me/activity", h.AuditLog.GetMyActivity).Methods(http.MethodGet)
	usersProtected.HandleFunc("/profile", h.User.UpdateProfile).Methods(http.MethodPut)

	// Post routes (public)
	posts := r.router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", h.Post.GetAllPosts).Methods(http.MethodGet)
	posts.HandleFunc("/user/{userId}", h.Post.GetPostsByUser).Methods(http.MethodGet)
	posts.HandleFunc("/{id}", h.Post.GetPost).Methods(http.MethodGet)
	posts.HandleFunc("/{id}/comments", h.Comment.GetComments).Methods(http.MethodGet)

	// Post routes (protected)
	postsProtected := r.router.PathPrefix("/posts").Subrouter()
	postsProtected.Use(m.Auth.Authenticate)
	postsProtected.HandleFunc("", h.Post.CreatePost).Methods(http.MethodPost)
	postsProtected.HandleFunc("/{id}", h.Post.UpdatePost).Methods(http.MethodPut)
	postsProtected.HandleFunc("/{id}", h.Post.DeletePost).Methods(http.MethodDelete)
	postsProtected.HandleFunc("/{id}/like", h.Reaction.Like).Methods(http.MethodPost)
	postsProtected.HandleFunc("/{id}/like", h.Reaction.RemoveLike).Methods(http.MethodDelete)
	postsProtected.HandleFunc("/{id}/dislike", h.Reaction.Dislike).Methods(http.MethodPost)
	postsProtected.HandleFunc("/{id}/dislike", h.Reaction.RemoveDislike).Methods(http.MethodDelete)
	postsProtected.HandleFunc("/{id}/comments", h.Comment.CreateComment).Methods(http.MethodPost)
	postsProtected.HandleFunc("/{postId}/comments/{commentId}", h.Comment.UpdateComment).Methods(http.MethodPut)
	postsProtected.HandleFunc("/{postId}/comments/{commentId}", h.Comment.DeleteComment).Methods(http.MethodDelete)

	// Hospital routes (public). Directory lookups must precede /{id}.
	hospitals := r.router.PathPrefix("/hospitals").Subrouter()
	hospitals.HandleFunc("/search", h.Directory.Search).Methods(http.MethodGet)
	hospitals.HandleFunc("/directory/{facilityId}", h.Directory.GetFacility).Methods(http.MethodGet)
	hospitals.HandleFunc("", h.Hospital.GetAllHospitals).Methods(http.MethodGet)
	hospitals.HandleFunc("", h.Hospital.CreateHospital).Methods(http.MethodPost)
	hospitals.HandleFunc("/{id}", h.Hospital.GetHospital).Methods(http.MethodGet)
	hospitals.HandleFunc("/{id}", h.Hospital.UpdateHospital).Methods(http.MethodPut)
	hospitals.HandleFunc("/{id}", h.Hospital.DeleteHospital).Methods(http.MethodDelete)
	hospitals.HandleFunc("/{id}/reviews", h.Review.GetHospitalReviews).Methods(http.MethodGet)
	hospitals.HandleFunc("/{id}/ratings", h.Rating.GetHospitalRatings).Methods(http.MethodGet)
	r.router.HandleFunc("/reviews", h.Review.GetAllReviews).Methods(http.MethodGet)

	// Hospital routes (protected)
	hospitalsProtected := r.router.PathPrefix("/hospitals").Subrouter()
	hospitalsProtected.Use(m.Auth.Authenticate)
	hospitalsProtected.HandleFunc("/{id}/reviews", h.Review.CreateReview).Methods(http.MethodPost)
	hospitalsProtected.HandleFunc("/{id}/ratings", h.Rating.CreateRating).Methods(http.MethodPost)

	reviews := r.router.PathPrefix("/reviews").Subrouter()
	reviews.Use(m.Auth.Authenticate)
	reviews.HandleFunc("/{id}", h.Review.UpdateReview).Methods(http.MethodPut)
	reviews.HandleFunc("/{id}", h.Review.DeleteReview).Methods(http.MethodDelete)

	ratings := r.router.PathPrefix("/ratings").Subrouter()
	ratings.Use(m.Auth.Authenticate)
	ratings.HandleFunc("/{id}", h.Rating.UpdateRating).Methods(http.MethodPut)
	ratings.HandleFunc("/{id}", h.Rating.DeleteRating).Methods(http.MethodDelete)

	r.router.Use(m.Logging.Handle)
	r.router.Use(m.Metrics.Handle)

	// CORS wraps the router so preflight requests never reach route matching.
	return m.Recovery.Handle(m.CORS.Handle(r.router))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
