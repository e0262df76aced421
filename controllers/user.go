package controllers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"storefront/middleware"
	"storefront/models"
	"storefront/utils"
)

// UserController handles signup, login and profile requests.
type UserController struct {
	Collection   *mongo.Collection
	EmailService *utils.EmailService
	Store        sessions.Store
}

// NewUserController creates a new UserController.
func NewUserController(client *mongo.Client, emailService *utils.EmailService, store sessions.Store) *UserController {
	return &UserController{
		Collection:   client.Database(utils.DatabaseName).Collection("users"),
		EmailService: emailService,
		Store:        store,
	}
}

// Register handles email/password signup and mails a verification link.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Email == "" || input.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	count, err := uc.Collection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "database error")
		return
	}
	if count > 0 {
		utils.RespondError(w, http.StatusBadRequest, "user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error hashing password")
		return
	}

	token, err := utils.GenerateVerificationToken(input.Email)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error generating verification token")
		return
	}

	user := models.User{
		ID:                uuid.NewString(),
		Name:              input.Name,
		Email:             input.Email,
		Password:          string(hashed),
		Role:              "user",
		IsActive:          true,
		VerificationToken: token,
		CreatedAt:         time.Now(),
	}
	if _, err := uc.Collection.InsertOne(ctx, user); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error creating user")
		return
	}

	if err := uc.EmailService.SendVerificationEmail(user.Email, token); err != nil {
		slog.Error("failed to send verification email", "email", user.Email, "error", err)
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]string{
		"message": "registered, check your email to verify your account",
	})
}

// VerifyEmail handles the link from the verification mail.
func (uc *UserController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.RespondError(w, http.StatusBadRequest, "verification token missing")
		return
	}
	email, err := utils.ParseVerificationToken(token)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid verification token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	result, err := uc.Collection.UpdateOne(ctx,
		bson.M{"email": email, "verification_token": token},
		bson.M{"$set": bson.M{"is_verified": true, "verification_token": ""}},
	)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error updating verification status")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusBadRequest, "user not found or already verified")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "email verified, you can now log in"})
}

// Login handles email/password authentication and issues the session
// cookie.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	var user models.User
	err := uc.Collection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(creds.Email))}).Decode(&user)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err := user.CanSignIn(); err != nil {
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := issueSession(uc.Store, w, r, user.ID); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error creating session")
		return
	}
	utils.RespondJSON(w, http.StatusOK, user)
}

// Logout expires the session cookie.
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := clearSession(uc.Store, w, r); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error clearing session")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// GetProfile returns the authenticated user's profile. A user without a
// saved address gets an empty default rather than an error.
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "login required")
		return
	}
	profile := *user
	if profile.Address == nil {
		profile.Address = &models.ShippingAddress{}
	}
	utils.RespondJSON(w, http.StatusOK, profile)
}

// UpdateProfile upserts the user's name and saved shipping address.
// Registered on POST and PATCH.
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "login required")
		return
	}

	var input struct {
		Name    *string                 `json:"name"`
		Address *models.ShippingAddress `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}

	set := bson.M{}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		set["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		input.Address.Normalize()
		set["address"] = input.Address
	}
	if len(set) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := uc.Collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": set}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error updating profile")
		return
	}

	var updated models.User
	if err := uc.Collection.FindOne(ctx, bson.M{"_id": user.ID}).Decode(&updated); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error loading profile")
		return
	}
	utils.RespondJSON(w, http.StatusOK, updated)
}
