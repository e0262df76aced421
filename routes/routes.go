// routes/routes.go
package routes

import (
	"github.com/gorilla/mux"

	"storefront/controllers"
	"storefront/middleware"
)

// RegisterRoutes sets up all the routes for the application.
func RegisterRoutes(
	router *mux.Router,
	auth *middleware.SessionAuth,
	userController *controllers.UserController,
	authController *controllers.AuthController,
	productController *controllers.ProductController,
	orderController *controllers.OrderController,
	adminController *controllers.AdminController,
) {
	// Public routes
	router.HandleFunc("/api/auth/register", userController.Register).Methods("POST")
	router.HandleFunc("/api/auth/verify-email", userController.VerifyEmail).Methods("GET")
	router.HandleFunc("/api/auth/login", userController.Login).Methods("POST")
	router.HandleFunc("/api/auth/logout", userController.Logout).Methods("POST")
	router.HandleFunc("/api/auth/mobile/request-otp", authController.RequestOTP).Methods("POST")
	router.HandleFunc("/api/auth/mobile/verify-otp", authController.VerifyOTP).Methods("POST")
	router.HandleFunc("/auth/google", authController.GoogleBegin).Methods("GET")
	router.HandleFunc("/auth/google/callback", authController.GoogleCallback).Methods("GET")

	// Storefront catalog
	router.HandleFunc("/api/products", productController.GetProducts).Methods("GET")
	router.HandleFunc("/api/products/{id}", productController.GetProductByID).Methods("GET")

	// Protected routes
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(auth.Middleware)
	protected.HandleFunc("/user/profile", userController.GetProfile).Methods("GET")
	protected.HandleFunc("/user/profile", userController.UpdateProfile).Methods("POST", "PATCH")
	protected.HandleFunc("/orders", orderController.GetOrders).Methods("GET")
	protected.HandleFunc("/orders", orderController.CreateOrder).Methods("POST")
	protected.HandleFunc("/orders/{id}/cancel", orderController.CancelOrder).Methods("POST")

	// Admin routes
	admin := router.PathPrefix("/api/admin").Subrouter()
	admin.Use(auth.Middleware)
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/orders", orderController.AdminListOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}", orderController.AdminUpdateStatus).Methods("PATCH")
	admin.HandleFunc("/users", adminController.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id}", adminController.SetUserActive).Methods("PATCH")
	admin.HandleFunc("/products", productController.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", productController.UpdateProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", productController.DeleteProduct).Methods("DELETE")
	admin.HandleFunc("/products/{id}/stock", productController.SetStock).Methods("PATCH")
	admin.HandleFunc("/products/{id}/active", productController.SetActive).Methods("PATCH")
	admin.HandleFunc("/analytics", adminController.Analytics).Methods("GET")
}
