package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/models"
	"storefront/utils"
)

// ProductController handles catalog reads and the admin product CRUD.
type ProductController struct {
	Collection *mongo.Collection
}

// NewProductController creates a new ProductController.
func NewProductController(client *mongo.Client) *ProductController {
	return &ProductController{
		Collection: client.Database(utils.DatabaseName).Collection("products"),
	}
}

// GetProducts lists active products with category/brand filters, name
// search and pagination.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{"is_active": true}
	q := r.URL.Query()
	if category := q.Get("category"); category != "" {
		filter["category"] = category
	}
	if brand := q.Get("brand"); brand != "" {
		filter["brand"] = brand
	}
	if search := q.Get("search"); search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}
	skip, limit := parsePagination(r)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.M{"created_at": -1})
	cursor, err := pc.Collection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error fetching products")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error reading products")
		return
	}
	utils.RespondJSON(w, http.StatusOK, products)
}

// GetProductByID retrieves a single product.
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	var product models.Product
	if err := pc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		utils.RespondError(w, http.StatusNotFound, "product not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, product)
}

// CreateProduct handles adding a new product (Admin only).
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if product.Name == "" || product.Price <= 0 {
		utils.RespondError(w, http.StatusBadRequest, "name and a positive price are required")
		return
	}
	product.ID = primitive.NilObjectID
	product.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	result, err := pc.Collection.InsertOne(ctx, product)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error creating product")
		return
	}
	product.ID = result.InsertedID.(primitive.ObjectID)
	utils.RespondJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles updating a product (Admin only).
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	product.ID = id

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	result, err := pc.Collection.ReplaceOne(ctx, bson.M{"_id": id}, product)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error updating product")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "product not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, product)
}

// DeleteProduct handles deleting a product (Admin only).
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	result, err := pc.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error deleting product")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "product not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// SetStock toggles the in-stock flag (Admin only).
func (pc *ProductController) SetStock(w http.ResponseWriter, r *http.Request) {
	pc.setFlag(w, r, "in_stock")
}

// SetActive toggles storefront visibility (Admin only).
func (pc *ProductController) SetActive(w http.ResponseWriter, r *http.Request) {
	pc.setFlag(w, r, "is_active")
}

func (pc *ProductController) setFlag(w http.ResponseWriter, r *http.Request, field string) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	var input struct {
		Value *bool `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Value == nil {
		utils.RespondError(w, http.StatusBadRequest, "boolean value is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	result, err := pc.Collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{field: *input.Value}})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error updating product")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "product not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{field: *input.Value})
}
