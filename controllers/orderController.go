package controllers

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nmwangi/duka-api/initializers"
	"github.com/nmwangi/duka-api/middlewares"
	"github.com/nmwangi/duka-api/models"
	"github.com/nmwangi/duka-api/utils"
	"gorm.io/gorm"
)

type CheckoutData struct {
	ShippingAddress string `json:"shippingAddress" binding:"required"`
}

var orderStatuses = map[string]models.OrderStatus{
	"PENDING":   models.OrderStatusPending,
	"CONFIRMED": models.OrderStatusConfirmed,
	"SHIPPED":   models.OrderStatusShipped,
	"DELIVERED": models.OrderStatusDelivered,
	"CANCELLED": models.OrderStatusCancelled,
}

func sendOrderConfirmationEmail(user models.User, order models.Order) {
	emailData := utils.OrderEmailData{
		Name:        user.Name,
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
		Message:     "We have received your order and will start processing it right away.",
	}

	templatePath := filepath.Join("templates", "order_confirmation.html")
	if err := utils.SendOrderEmail(user.Email, "Order Confirmation", emailData, templatePath); err != nil {
		log.Println("Error sending order confirmation email:", err)
	}
}

// Checkout turns the caller's cart into an order. Every line is re-validated
// against current stock inside one transaction, stock is deducted, prices are
// snapshotted onto the order items and the cart is cleared.
func Checkout(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)

	var input CheckoutData
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	tx := initializers.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var cartItems []models.CartItem
	if err := tx.Preload("Product").Where("user_id = ?", user.ID).Find(&cartItems).Error; err != nil {
		tx.Rollback()
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	if len(cartItems) == 0 {
		tx.Rollback()
		sendErrorResponse(ctx, http.StatusBadRequest, "Cart is empty")
		return
	}

	total := 0.0
	orderItems := make([]models.OrderItem, 0, len(cartItems))

	for _, item := range cartItems {
		product := item.Product
		if !product.IsActive() {
			tx.Rollback()
			sendErrorResponse(ctx, http.StatusBadRequest, "Product no longer available: "+product.Name)
			return
		}
		if !product.HasStock(item.Quantity) {
			tx.Rollback()
			sendErrorResponse(ctx, http.StatusBadRequest, "Insufficient stock for "+product.Name)
			return
		}

		if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity)).Error; err != nil {
			tx.Rollback()
			log.Println("Stock update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update stock")
			return
		}

		total += item.Subtotal()
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
	}

	order := models.Order{
		UserID:          user.ID,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		ShippingAddress: input.ShippingAddress,
		OrderDate:       time.Now(),
		OrderItems:      orderItems,
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		log.Println("Order creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
		return
	}

	if err := tx.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		log.Println("Cart clear error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Println("Commit error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save order")
		return
	}

	go sendOrderConfirmationEmail(user, order)
	if err := utils.NotifyOrderEvent(order.ID, "order.created", string(order.Status)); err != nil {
		log.Println("Webhook error:", err)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"orderId": order.ID,
		"total":   order.TotalAmount,
	})
}

// GetOrders lists the caller's orders, newest first. Admins may pass a
// status filter to see every order in that status.
func GetOrders(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)

	query := initializers.DB.Preload("OrderItems").Order("order_date desc")

	if statusParam := ctx.Query("status"); statusParam != "" && user.IsAdmin() {
		status, ok := orderStatuses[statusParam]
		if !ok {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order status: "+statusParam)
			return
		}
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("user_id = ?", user.ID)
	}

	var orders []models.Order
	if result := query.Find(&orders); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

func findOrderForCaller(ctx *gin.Context, user models.User) (models.Order, bool) {
	orderId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return models.Order{}, false
	}

	var order models.Order
	if err := initializers.DB.Preload("OrderItems").First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order")
		}
		return models.Order{}, false
	}

	if order.UserID != user.ID && !user.IsAdmin() {
		sendErrorResponse(ctx, http.StatusForbidden, "Unauthorized")
		return models.Order{}, false
	}

	return order, true
}

// GetOrder returns one order, visible to its owner and to admins.
func GetOrder(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)

	order, ok := findOrderForCaller(ctx, user)
	if !ok {
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

func saveTransition(ctx *gin.Context, order *models.Order, event string) {
	if err := initializers.DB.Save(order).Error; err != nil {
		log.Println("Update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	if err := utils.NotifyOrderEvent(order.ID, event, string(order.Status)); err != nil {
		log.Println("Webhook error:", err)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"status":  order.Status,
	})
}

// ConfirmOrder marks an order CONFIRMED (admin only).
func ConfirmOrder(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)

	order, ok := findOrderForCaller(ctx, user)
	if !ok {
		return
	}

	order.Confirm()
	saveTransition(ctx, &order, "order.confirmed")
}

// ShipOrder marks an order SHIPPED and stamps the shipped date (admin only).
func ShipOrder(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)

	order, ok := findOrderForCaller(ctx, user)
	if !ok {
		return
	}

	order.Ship()
	saveTransition(ctx, &order, "order.shipped")
}

// DeliverOrder marks an order DELIVERED and stamps the delivered date
// (admin only).
func DeliverOrder(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)

	order, ok := findOrderForCaller(ctx, user)
	if !ok {
		return
	}

	order.Deliver()
	saveTransition(ctx, &order, "order.delivered")
}

// CancelOrder cancels an order for its owner or an admin. The guard lives
// here, not in the mutator: Cancel itself never checks the current status.
func CancelOrder(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)

	order, ok := findOrderForCaller(ctx, user)
	if !ok {
		return
	}

	if !order.CanBeCancelled() {
		sendErrorResponse(ctx, http.StatusBadRequest, "Order can no longer be cancelled")
		return
	}

	order.Cancel()
	saveTransition(ctx, &order, "order.cancelled")
}
