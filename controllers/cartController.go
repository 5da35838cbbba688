package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nmwangi/duka-api/initializers"
	"github.com/nmwangi/duka-api/middlewares"
	"github.com/nmwangi/duka-api/models"
	"gorm.io/gorm"
)

type AddToCartData struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

type UpdateCartItemData struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart returns the caller's cart lines with the running total. The total
// is computed from current product prices, so it moves with price edits.
func GetCart(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)

	var cartItems []models.CartItem
	if err := initializers.DB.Preload("Product").Where("user_id = ?", user.ID).Find(&cartItems).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	total := 0.0
	for _, item := range cartItems {
		total += item.Subtotal()
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"items":     cartItems,
		"total":     total,
		"itemCount": len(cartItems),
	})
}

// AddToCart adds a product to the caller's cart. An existing line for the
// same product merges quantities; the merged quantity is re-checked against
// current stock and the old line is kept on failure. Stock itself is not
// reserved here, only read, so two carts can race for the last unit.
func AddToCart(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)

	var input AddToCartData
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var product models.Product
	err := initializers.DB.First(&product, input.ProductID).Error
	if err != nil || !product.IsActive() {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch product")
			return
		}
		sendErrorResponse(ctx, http.StatusBadRequest, "Product not found")
		return
	}

	if !product.HasStock(input.Quantity) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Insufficient stock")
		return
	}

	var existingItem models.CartItem
	err = initializers.DB.Where("user_id = ? AND product_id = ?", user.ID, product.ID).First(&existingItem).Error

	if err == nil {
		newQuantity := existingItem.Quantity + input.Quantity
		if !product.HasStock(newQuantity) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Insufficient stock for requested quantity")
			return
		}

		existingItem.Quantity = newQuantity
		if err := initializers.DB.Save(&existingItem).Error; err != nil {
			log.Println("Update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to update cart item quantity")
			return
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		cartItem := models.CartItem{
			UserID:    user.ID,
			ProductID: product.ID,
			Quantity:  input.Quantity,
		}
		if err := initializers.DB.Create(&cartItem).Error; err != nil {
			log.Println("Create error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create cart item")
			return
		}
	} else {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch cart item")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product added to cart successfully"})
}

// UpdateCartItem overwrites a line's quantity. A quantity of zero or less
// removes the line instead of failing.
func UpdateCartItem(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)

	itemId, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid cart item ID")
		return
	}

	var input UpdateCartItemData
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	quantity := *input.Quantity

	var cartItem models.CartItem
	if err := initializers.DB.Preload("Product").First(&cartItem, itemId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart item not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart item")
		}
		return
	}

	if cartItem.UserID != user.ID {
		sendErrorResponse(ctx, http.StatusForbidden, "Unauthorized")
		return
	}

	if quantity <= 0 {
		if err := initializers.DB.Delete(&cartItem).Error; err != nil {
			log.Println("Delete error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove cart item")
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item removed from cart"})
		return
	}

	if !cartItem.Product.HasStock(quantity) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Insufficient stock")
		return
	}

	cartItem.Quantity = quantity
	if err := initializers.DB.Save(&cartItem).Error; err != nil {
		log.Println("Update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update cart item")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart updated successfully"})
}

// RemoveFromCart deletes a single line after an ownership check.
func RemoveFromCart(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)

	itemId, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid cart item ID")
		return
	}

	var cartItem models.CartItem
	if err := initializers.DB.First(&cartItem, itemId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart item not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart item")
		}
		return
	}

	if cartItem.UserID != user.ID {
		sendErrorResponse(ctx, http.StatusForbidden, "Unauthorized")
		return
	}

	if err := initializers.DB.Delete(&cartItem).Error; err != nil {
		log.Println("Delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item removed from cart successfully"})
}

// ClearCart deletes every line the caller owns. Clearing an empty cart is a
// no-op, not an error.
func ClearCart(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)

	if err := initializers.DB.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		log.Println("Delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared successfully"})
}
