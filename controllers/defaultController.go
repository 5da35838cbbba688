package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to Duka API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/api/auth/signup" - Create user account
- POST "/api/auth/signin" - Sign in and receive a token
- GET "/api/auth/me" - Get the current user

PRODUCTS
- GET "/api/products" - List products (paged, filtered, sorted)
- GET "/api/products/{id}" - Get product by ID
- GET "/api/products/categories" - List product categories
- POST "/api/products" - Create product (admin)
- PUT "/api/products/{id}" - Update product (admin)
- DELETE "/api/products/{id}" - Soft-delete product (admin)
- GET "/api/products/low-stock" - List low stock products (admin)
- POST "/api/products/{id}/image" - Upload product image (admin)

CART
- GET "/api/cart" - Get the current cart
- POST "/api/cart/add" - Add a product to the cart
- PUT "/api/cart/update/{itemId}" - Update a cart item quantity
- DELETE "/api/cart/remove/{itemId}" - Remove a cart item
- DELETE "/api/cart/clear" - Clear the cart

ORDERS
- POST "/api/orders/checkout" - Place an order from the cart
- GET "/api/orders" - List orders
- GET "/api/orders/{id}" - Get order by ID
- PUT "/api/orders/{id}/confirm" - Confirm order (admin)
- PUT "/api/orders/{id}/ship" - Ship order (admin)
- PUT "/api/orders/{id}/deliver" - Deliver order (admin)
- PUT "/api/orders/{id}/cancel" - Cancel order`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
