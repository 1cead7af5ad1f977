package router

import (
	"net/http"

	"poppes-store/internal/handler"
	"poppes-store/internal/middleware"
	"poppes-store/internal/service"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	authHandler *handler.AuthHandler,
	auth service.AuthService,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Identity
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("GET /api/auth/me", requireAuth(authHandler.Me))

	// Catalogue browsing. The featured route must be registered before
	// the wildcard so it wins the match.
	mux.HandleFunc("GET /api/products", productHandler.List)
	mux.HandleFunc("GET /api/products/featured", productHandler.Featured)
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetByID)

	// Cart (session-scoped, no authentication required)
	mux.HandleFunc("GET /api/cart", cartHandler.Get)
	mux.HandleFunc("POST /api/cart/items", cartHandler.AddItem)
	mux.HandleFunc("PUT /api/cart/items/{id}", cartHandler.UpdateItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", cartHandler.RemoveItem)
	mux.HandleFunc("DELETE /api/cart", cartHandler.Clear)

	// Checkout and order tracking
	mux.HandleFunc("POST /api/checkout", orderHandler.Checkout)
	mux.Handle("GET /api/orders", requireAuth(orderHandler.ListMine))
	mux.HandleFunc("GET /api/orders/{id}", orderHandler.GetByID)

	// Admin panel
	mux.Handle("POST /api/admin/products", requireAdmin(productHandler.Create))
	mux.Handle("PUT /api/admin/products/{id}", requireAdmin(productHandler.Update))
	mux.Handle("DELETE /api/admin/products/{id}", requireAdmin(productHandler.Delete))
	mux.Handle("POST /api/admin/products/{id}/image", requireAdmin(productHandler.UploadImage))
	mux.Handle("GET /api/admin/orders", requireAdmin(orderHandler.ListAll))
	mux.Handle("PUT /api/admin/orders/{id}/status", requireAdmin(orderHandler.UpdateStatus))

	// Apply middleware in order: Recovery -> Logging -> CORS ->
	// Authenticate -> Session
	var h http.Handler = mux
	h = middleware.Session(h)
	h = middleware.Authenticate(auth, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}

func requireAuth(h http.HandlerFunc) http.Handler {
	return middleware.RequireAuth(h)
}

func requireAdmin(h http.HandlerFunc) http.Handler {
	return middleware.RequireAdmin(h)
}
