// main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	"go.mongodb.org/mongo-driver/bson"

	"storefront/controllers"
	"storefront/middleware"
	"storefront/models"
	"storefront/routes"
	"storefront/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, proceeding with environment variables")
	}

	cfg := utils.LoadConfig()
	logger := utils.NewLogger(cfg.AppEnv, os.Getenv("LOG_LEVEL"))

	// Set the JWT secret key for verification tokens
	utils.JwtKey = []byte(cfg.JWTSecret)

	// Session store backs both our cookies and the gothic OAuth flow
	store := utils.NewSessionStore(cfg.SessionSecret, !cfg.IsDev())
	gothic.Store = store
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		goth.UseProviders(
			google.New(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL),
		)
	}

	emailService := utils.NewEmailService(cfg.PostmarkToken, cfg.EmailSender, cfg.BaseURL)
	var sms utils.SMSSender = utils.LogSMSSender{}

	router := mux.NewRouter()

	// Without a database URI the process still serves, but every
	// persistence-dependent route answers 503.
	if cfg.MongoURI == "" {
		logger.Warn("MONGODB_URI not set, persistence-dependent routes disabled")
		router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			utils.RespondError(w, http.StatusServiceUnavailable, "persistence is not configured")
		})
	} else {
		client, err := utils.ConnectDB(cfg.MongoURI)
		if err != nil {
			logger.Error("failed to connect to mongodb", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error("failed to disconnect from mongodb", "error", err)
			}
		}()

		users := client.Database(utils.DatabaseName).Collection("users")
		auth := &middleware.SessionAuth{
			Store: store,
			LoadUser: func(ctx context.Context, id string) (*models.User, error) {
				var u models.User
				if err := users.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
					return nil, err
				}
				return &u, nil
			},
		}

		routes.RegisterRoutes(router,
			auth,
			controllers.NewUserController(client, emailService, store),
			controllers.NewAuthController(client, sms, store),
			controllers.NewProductController(client),
			controllers.NewOrderController(client, emailService),
			controllers.NewAdminController(client),
		)
	}

	logger.Info("server listening", "port", cfg.Port, "env", cfg.AppEnv)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
