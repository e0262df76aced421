package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/middleware"
	"storefront/models"
	"storefront/utils"
)

// OrderController handles checkout, order history, user cancellation and
// the admin order surface.
type OrderController struct {
	Orders       *mongo.Collection
	Users        *mongo.Collection
	EmailService *utils.EmailService
}

// NewOrderController creates a new OrderController.
func NewOrderController(client *mongo.Client, emailService *utils.EmailService) *OrderController {
	db := client.Database(utils.DatabaseName)
	return &OrderController{
		Orders:       db.Collection("orders"),
		Users:        db.Collection("users"),
		EmailService: emailService,
	}
}

// CreateOrder accepts a frozen cart snapshot and persists it as a pending
// order. Validation mirrors the client-side gate; items, address and user
// info are embedded as given, no live joins.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "login required")
		return
	}

	var req struct {
		Items         []models.OrderItem     `json:"items"`
		Address       models.ShippingAddress `json:"address"`
		PaymentMethod string                 `json:"payment_method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if err := models.ValidateOrder(req.Items, user.ID, &req.Address); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Address.Normalize()

	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PaymentCOD
	}
	if req.PaymentMethod != models.PaymentCOD {
		utils.RespondError(w, http.StatusBadRequest, "only cash on delivery is supported")
		return
	}

	order := models.Order{
		User: models.OrderUserInfo{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
		},
		Items:         req.Items,
		TotalAmount:   models.Total(req.Items),
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		Status:        models.StatusPending,
		CreatedAt:     time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	result, err := oc.Orders.InsertOne(ctx, order)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to create order")
		return
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	if user.Email != "" {
		go func(email string, order models.Order) {
			if err := oc.EmailService.SendOrderConfirmationEmail(email, order); err != nil {
				slog.Error("failed to send order confirmation", "email", email, "error", err)
			}
		}(user.Email, order)
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"order_id":     order.ID.Hex(),
		"total_amount": order.TotalAmount,
		"status":       order.Status,
		"message":      "order placed, payment due on delivery",
	})
}

// GetOrders lists the authenticated user's orders, newest first.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "login required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := oc.Orders.Find(ctx, bson.M{"user.user_id": user.ID}, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error decoding orders")
		return
	}
	for i := range orders {
		orders[i].Cancelable = orders[i].CanCancel()
	}
	utils.RespondJSON(w, http.StatusOK, orders)
}

// CancelOrder lets the owner cancel while the order has not shipped.
func (oc *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "login required")
		return
	}
	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	var order models.Order
	err = oc.Orders.FindOne(ctx, bson.M{"_id": orderID, "user.user_id": user.ID}).Decode(&order)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "order not found")
		return
	}

	if err := order.Cancel(); err != nil {
		if errors.Is(err, models.ErrCannotCancel) {
			utils.RespondError(w, http.StatusConflict, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to cancel order")
		return
	}

	_, err = oc.Orders.UpdateOne(ctx, bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"status": models.StatusCancelled}})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to cancel order")
		return
	}
	order.Cancelable = false
	utils.RespondJSON(w, http.StatusOK, order)
}

// AdminListOrders lists all orders with an optional status filter
// (Admin only).
func (oc *OrderController) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.ValidStatus(status) {
			utils.RespondError(w, http.StatusBadRequest, "unknown status")
			return
		}
		filter["status"] = status
	}
	skip, limit := parsePagination(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.M{"created_at": -1})
	cursor, err := oc.Orders.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error decoding orders")
		return
	}
	for i := range orders {
		orders[i].Cancelable = orders[i].CanCancel()
	}
	utils.RespondJSON(w, http.StatusOK, orders)
}

// AdminUpdateStatus sets an order's status (Admin only). Any valid status is
// accepted from any other; the back office keeps manual correction open.
func (oc *OrderController) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid order ID")
		return
	}
	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if !models.ValidStatus(input.Status) {
		utils.RespondError(w, http.StatusBadRequest, "unknown status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	result, err := oc.Orders.UpdateOne(ctx, bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"status": input.Status}})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to update status")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "order not found")
		return
	}

	var order models.Order
	if err := oc.Orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err == nil && order.User.Email != "" {
		go func(email string, order models.Order) {
			if err := oc.EmailService.SendOrderStatusEmail(email, order); err != nil {
				slog.Error("failed to send status email", "email", email, "error", err)
			}
		}(order.User.Email, order)
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "status updated", "status": input.Status})
}
