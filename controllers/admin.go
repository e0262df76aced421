package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/models"
	"storefront/utils"
)

// AdminController handles the user back-office and the analytics view.
type AdminController struct {
	Users    *mongo.Collection
	Products *mongo.Collection
	Orders   *mongo.Collection
}

// NewAdminController creates a new AdminController.
func NewAdminController(client *mongo.Client) *AdminController {
	db := client.Database(utils.DatabaseName)
	return &AdminController{
		Users:    db.Collection("users"),
		Products: db.Collection("products"),
		Orders:   db.Collection("orders"),
	}
}

// ListUsers lists users with pagination (Admin only).
func (ac *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.M{"created_at": -1})
	cursor, err := ac.Users.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to retrieve users")
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error decoding users")
		return
	}
	utils.RespondJSON(w, http.StatusOK, users)
}

// SetUserActive toggles a user's active flag (Admin only). Deactivation
// invalidates every session referencing the user.
func (ac *AdminController) SetUserActive(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	var input struct {
		IsActive *bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.IsActive == nil {
		utils.RespondError(w, http.StatusBadRequest, "is_active boolean is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	result, err := ac.Users.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$set": bson.M{"is_active": *input.IsActive}})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "user not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"is_active": *input.IsActive})
}

// AnalyticsSummary is the read-only aggregate for the dashboard.
type AnalyticsSummary struct {
	Period         string           `json:"period"`
	Since          time.Time        `json:"since"`
	Orders         int64            `json:"orders"`
	Revenue        float64          `json:"revenue"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	NewUsers       int64            `json:"new_users"`
	ActiveProducts int64            `json:"active_products"`
	TotalProducts  int64            `json:"total_products"`
}

var errUnknownPeriod = errors.New("unknown period")

// periodCutoff maps the fixed set of analytics windows to a since-time.
func periodCutoff(period string, now time.Time) (time.Time, error) {
	switch period {
	case "24h":
		return now.Add(-24 * time.Hour), nil
	case "7d":
		return now.AddDate(0, 0, -7), nil
	case "30d":
		return now.AddDate(0, 0, -30), nil
	case "90d":
		return now.AddDate(0, 0, -90), nil
	case "1y":
		return now.AddDate(-1, 0, 0), nil
	}
	return time.Time{}, errUnknownPeriod
}

// Analytics aggregates orders, users and products since the requested
// cutoff (Admin only). Cancelled orders are counted but excluded from
// revenue.
func (ac *AdminController) Analytics(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	since, err := periodCutoff(period, time.Now())
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "period must be one of 24h, 7d, 30d, 90d, 1y")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": since}}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":     "$status",
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$total_amount"},
		}}},
	}
	cursor, err := ac.Orders.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "analytics query failed")
		return
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Status  string  `bson:"_id"`
		Count   int64   `bson:"count"`
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "analytics query failed")
		return
	}

	summary := AnalyticsSummary{
		Period:         period,
		Since:          since,
		OrdersByStatus: map[string]int64{},
	}
	for _, g := range groups {
		summary.Orders += g.Count
		summary.OrdersByStatus[g.Status] = g.Count
		if g.Status != models.StatusCancelled {
			summary.Revenue += g.Revenue
		}
	}

	if summary.NewUsers, err = ac.Users.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": since}}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "analytics query failed")
		return
	}
	if summary.ActiveProducts, err = ac.Products.CountDocuments(ctx, bson.M{"is_active": true}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "analytics query failed")
		return
	}
	if summary.TotalProducts, err = ac.Products.CountDocuments(ctx, bson.M{}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "analytics query failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, summary)
}
