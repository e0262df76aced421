package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth/gothic"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"storefront/models"
	"storefront/utils"
)

// AuthController handles the mobile-OTP and Google sign-in paths. Both end
// in the same session issuance as password login.
type AuthController struct {
	Collection *mongo.Collection
	SMS        utils.SMSSender
	Store      sessions.Store
}

// NewAuthController creates a new AuthController.
func NewAuthController(client *mongo.Client, sms utils.SMSSender, store sessions.Store) *AuthController {
	return &AuthController{
		Collection: client.Database(utils.DatabaseName).Collection("users"),
		SMS:        sms,
		Store:      store,
	}
}

// RequestOTP generates a fresh 6-digit code for the mobile number and sends
// it out-of-band. An unknown number gets a stub user record that holds the
// pending code until verification completes registration.
func (ac *AuthController) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Mobile string `json:"mobile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	mobile := models.NormalizePhone(input.Mobile)
	if len(mobile) != 10 {
		utils.RespondError(w, http.StatusBadRequest, "mobile number must be exactly 10 digits")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := ac.Collection.FindOne(ctx, bson.M{"mobile": mobile}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		user = models.User{
			ID:        uuid.NewString(),
			Mobile:    mobile,
			Role:      "user",
			IsActive:  true,
			CreatedAt: time.Now(),
		}
		if _, err := ac.Collection.InsertOne(ctx, user); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "database error")
			return
		}
	} else if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "database error")
		return
	}
	if err := user.CanSignIn(); err != nil {
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	code, err := models.GenerateOTP()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error generating OTP")
		return
	}
	expiry := time.Now().Add(models.OTPTTL)
	_, err = ac.Collection.UpdateOne(ctx, bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"otp": code, "otp_expiry": expiry}})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "database error")
		return
	}

	if err := ac.SMS.SendOTP(mobile, code); err != nil {
		slog.Error("failed to send otp", "mobile", mobile, "error", err)
		utils.RespondError(w, http.StatusInternalServerError, "error sending OTP")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "OTP sent"})
}

// VerifyOTP checks the submitted code and issues a session. It is the
// convenience wrapper over two primitives: verifying a known account, and
// registering an unknown mobile when name+password accompany the code.
// Expired, mismatched and missing-registration cases each get their own
// message so the client can offer resend vs re-enter vs a signup form.
func (ac *AuthController) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Mobile   string `json:"mobile"`
		OTP      string `json:"otp"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	mobile := models.NormalizePhone(input.Mobile)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := ac.Collection.FindOne(ctx, bson.M{"mobile": mobile}).Decode(&user); err != nil {
		utils.RespondError(w, http.StatusNotFound, "no OTP pending for this number")
		return
	}
	if err := user.CanSignIn(); err != nil {
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	switch err := user.CheckOTP(input.OTP, time.Now()); {
	case errors.Is(err, models.ErrOTPExpired):
		utils.RespondError(w, http.StatusUnauthorized, models.ErrOTPExpired.Error())
		return
	case errors.Is(err, models.ErrOTPMismatch):
		utils.RespondError(w, http.StatusUnauthorized, models.ErrOTPMismatch.Error())
		return
	case errors.Is(err, models.ErrNoOTPPending):
		utils.RespondError(w, http.StatusBadRequest, models.ErrNoOTPPending.Error())
		return
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, "error verifying OTP")
		return
	}

	if !user.IsRegistered() {
		if input.Name == "" || input.Password == "" {
			utils.RespondError(w, http.StatusBadRequest, models.ErrOTPNeedsRegistration.Error())
			return
		}
		if err := ac.registerWithOTP(ctx, &user, input.Name, input.Password); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "error completing registration")
			return
		}
	} else if err := ac.markVerified(ctx, &user); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error verifying OTP")
		return
	}

	if err := issueSession(ac.Store, w, r, user.ID); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error creating session")
		return
	}
	utils.RespondJSON(w, http.StatusOK, user)
}

// registerWithOTP turns a stub record into a full account. Primitive behind
// the verify endpoint's implicit-signup convenience.
func (ac *AuthController) registerWithOTP(ctx context.Context, user *models.User, name, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Name = name
	user.Password = string(hashed)
	user.IsVerified = true
	user.ClearOTP()
	_, err = ac.Collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set":   bson.M{"name": name, "password": user.Password, "is_verified": true},
		"$unset": bson.M{"otp": "", "otp_expiry": ""},
	})
	return err
}

// markVerified clears the consumed code on an existing account.
func (ac *AuthController) markVerified(ctx context.Context, user *models.User) error {
	user.IsVerified = true
	user.ClearOTP()
	_, err := ac.Collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set":   bson.M{"is_verified": true},
		"$unset": bson.M{"otp": "", "otp_expiry": ""},
	})
	return err
}

// GoogleBegin starts the Google OAuth redirect flow.
func (ac *AuthController) GoogleBegin(w http.ResponseWriter, r *http.Request) {
	gothic.BeginAuthHandler(w, gothic.GetContextWithProvider(r, "google"))
}

// GoogleCallback completes the flow, finds-or-creates the local user keyed
// by the federated id, and issues the session.
func (ac *AuthController) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	gothUser, err := gothic.CompleteUserAuth(w, gothic.GetContextWithProvider(r, "google"))
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "google sign-in failed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"google_id": gothUser.UserID},
		{"email": gothUser.Email},
	}}
	var user models.User
	err = ac.Collection.FindOne(ctx, filter).Decode(&user)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		// the federated id is the primary key for Google-first signups
		user = models.User{
			ID:         gothUser.UserID,
			Name:       gothUser.Name,
			Email:      gothUser.Email,
			GoogleID:   gothUser.UserID,
			Role:       "user",
			IsActive:   true,
			IsVerified: true,
			CreatedAt:  time.Now(),
		}
		if _, err := ac.Collection.InsertOne(ctx, user); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "database error")
			return
		}
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, "database error")
		return
	default:
		if user.GoogleID == "" {
			_, err := ac.Collection.UpdateOne(ctx, bson.M{"_id": user.ID},
				bson.M{"$set": bson.M{"google_id": gothUser.UserID, "is_verified": true}})
			if err != nil {
				utils.RespondError(w, http.StatusInternalServerError, "database error")
				return
			}
			user.GoogleID = gothUser.UserID
		}
	}

	if err := user.CanSignIn(); err != nil {
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err := issueSession(ac.Store, w, r, user.ID); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error creating session")
		return
	}
	utils.RespondJSON(w, http.StatusOK, user)
}
