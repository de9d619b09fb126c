package http

import (
	"net/http"

	"library-lending/internal/delivery/http/handler"
	"library-lending/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router          *mux.Router
	authHandler     *handler.AuthHandler
	bookHandler     *handler.BookHandler
	lendingHandler  *handler.LendingHandler
	staffHandler    *handler.StaffHandler
	reportHandler   *handler.ReportHandler
	auditLogHandler *handler.AuditLogHandler
	authMiddleware  *middleware.AuthMiddleware
	corsMiddleware  *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	bookHandler *handler.BookHandler,
	lendingHandler *handler.LendingHandler,
	staffHandler *handler.StaffHandler,
	reportHandler *handler.ReportHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		authHandler:     authHandler,
		bookHandler:     bookHandler,
		lendingHandler:  lendingHandler,
		staffHandler:    staffHandler,
		reportHandler:   reportHandler,
		auditLogHandler: auditLogHandler,
		authMiddleware:  authMiddleware,
		corsMiddleware:  corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Catalog browsing (any authenticated user)
	books := api.PathPrefix("/books").Subrouter()
	books.Use(r.authMiddleware.Authenticate)
	books.HandleFunc("", r.bookHandler.List).Methods(http.MethodGet)
	books.HandleFunc("/search", r.bookHandler.Search).Methods(http.MethodGet)
	books.HandleFunc("/{id}", r.bookHandler.Get).Methods(http.MethodGet)

	// Catalog and circulation management (librarian or admin)
	staffAPI := api.PathPrefix("").Subrouter()
	staffAPI.Use(r.authMiddleware.Authenticate)
	staffAPI.Use(middleware.RequireLibrarianOrAdmin)
	staffAPI.HandleFunc("/books", r.bookHandler.Create).Methods(http.MethodPost)
	staffAPI.HandleFunc("/books/{id}", r.bookHandler.Update).Methods(http.MethodPut)
	staffAPI.HandleFunc("/books/{id}", r.bookHandler.Delete).Methods(http.MethodDelete)
	staffAPI.HandleFunc("/books/{id}/return", r.lendingHandler.Return).Methods(http.MethodPost)
	staffAPI.HandleFunc("/borrows", r.lendingHandler.Borrow).Methods(http.MethodPost)
	staffAPI.HandleFunc("/readers/{id}/borrows", r.lendingHandler.History).Methods(http.MethodGet)
	staffAPI.HandleFunc("/reports/statistics", r.reportHandler.Statistics).Methods(http.MethodGet)

	// Staff and audit administration (admin only)
	admin := api.PathPrefix("").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/staff", r.staffHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/staff", r.staffHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/staff/{id}", r.staffHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/staff/{id}", r.staffHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/staff/{id}", r.staffHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.Get).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
