package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/nmwangi/duka-api/initializers"
	"github.com/nmwangi/duka-api/models"
	"gorm.io/gorm"
)

// Sortable columns for the catalog listing. Anything else is rejected
// instead of being handed to the query engine.
var allowedSortFields = map[string]string{
	"id":             "id",
	"name":           "name",
	"price":          "price",
	"category":       "category",
	"stockQuantity":  "stock_quantity",
	"stock_quantity": "stock_quantity",
	"createdAt":      "created_at",
	"created_at":     "created_at",
}

func activeProducts(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Product{}).Where("active = ?", true)
}

// GetProducts lists active products with optional name/category/price filters
// and paging. Absent filter params mean no constraint.
func GetProducts(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid page")
		return
	}
	size, err := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid size")
		return
	}

	sortBy := ctx.DefaultQuery("sortBy", "id")
	column, ok := allowedSortFields[sortBy]
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid sort field: "+sortBy)
		return
	}

	direction := "asc"
	if strings.EqualFold(ctx.DefaultQuery("sortDir", "asc"), "desc") {
		direction = "desc"
	}

	query := activeProducts(initializers.DB)

	if name := ctx.Query("name"); name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if minPriceStr := ctx.Query("minPrice"); minPriceStr != "" {
		minPrice, err := strconv.ParseFloat(minPriceStr, 64)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid minPrice")
			return
		}
		query = query.Where("price >= ?", minPrice)
	}
	if maxPriceStr := ctx.Query("maxPrice"); maxPriceStr != "" {
		maxPrice, err := strconv.ParseFloat(maxPriceStr, 64)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid maxPrice")
			return
		}
		query = query.Where("price <= ?", maxPrice)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch products")
		return
	}

	var products []models.Product
	result := query.Order(column + " " + direction).Limit(size).Offset(page * size).Find(&products)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch products")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"products":    products,
		"currentPage": page,
		"totalItems":  count,
		"totalPages":  int(math.Ceil(float64(count) / float64(size))),
	})
}

// GetProduct returns a single active product. Soft-deleted rows 404.
func GetProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	result := initializers.DB.First(&product, productId)
	if result.Error != nil || !product.IsActive() {
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to retrieve product")
			return
		}
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// GetCategories lists the distinct categories of active products.
func GetCategories(ctx *gin.Context) {
	var categories []string
	result := activeProducts(initializers.DB).Distinct().Pluck("category", &categories)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch categories")
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// CreateProduct adds a catalog row (admin only).
func CreateProduct(ctx *gin.Context) {
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create product")
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

// UpdateProduct overwrites the full field set of an existing row (admin only).
func UpdateProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to retrieve product")
		}
		return
	}

	var details models.Product
	if err := ctx.ShouldBindJSON(&details); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	product.Name = details.Name
	product.Description = details.Description
	product.Price = details.Price
	product.StockQuantity = details.StockQuantity
	product.Category = details.Category
	product.ImageUrl = details.ImageUrl
	if details.Active != nil {
		product.Active = details.Active
	}
	product.Specs = details.Specs

	if err := initializers.DB.Save(&product).Error; err != nil {
		log.Println("Update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update product")
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// DeleteProduct soft-deletes a row by flipping Active off. The row stays so
// existing cart and order references keep resolving.
func DeleteProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	result := initializers.DB.Model(&models.Product{}).Where("id = ?", productId).Update("active", false)
	if result.Error != nil {
		log.Println("Delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// GetLowStockProducts lists products with stock strictly below the threshold
// (admin only).
func GetLowStockProducts(ctx *gin.Context) {
	threshold, err := strconv.Atoi(ctx.DefaultQuery("threshold", "10"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid threshold")
		return
	}

	var products []models.Product
	result := initializers.DB.Where("stock_quantity < ?", threshold).Find(&products)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch products")
		return
	}

	ctx.JSON(http.StatusOK, products)
}

func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadProductImage pushes an image to S3 and stores its URL on the product
// (admin only).
func UploadProductImage(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to retrieve product")
		}
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "No file uploaded")
		return
	}

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Missing storage configuration")
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		log.Println("AWS config error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to configure AWS")
		return
	}

	f, err := file.Open()
	if err != nil {
		log.Printf("Error opening file %s: %v", file.Filename, err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}
	defer f.Close()

	// Unique key so re-uploads never clobber each other
	key := fmt.Sprintf("%d-%s-%s", productId, time.Now().Format("20060102150405"), file.Filename)

	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		log.Printf("Error uploading file %s: %v", file.Filename, err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	if err := initializers.DB.Model(&product).Update("image_url", result.Location).Error; err != nil {
		log.Println("Update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Image uploaded but not saved")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Image uploaded successfully",
		"url":     result.Location,
	})
}
