package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShanAhmd/HiDrawpix/middleware"
	"github.com/ShanAhmd/HiDrawpix/services"
	"github.com/ShanAhmd/HiDrawpix/store"
	"github.com/ShanAhmd/HiDrawpix/utils"
)

// ListOrders handles GET /api/v1/admin/orders - the dashboard order list.
// Supports ?status= (a status or "All") and ?sort= (asc|desc).
func ListOrders(c *gin.Context) {
	orders, err := orderStore.List()
	if err != nil {
		log.Printf("failed to list orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load orders",
			},
		})
		return
	}

	feed := services.NewOrderFeed()
	feed.Apply(orders)
	view := feed.View(c.DefaultQuery("status", services.FilterAll), c.DefaultQuery("sort", services.SortDesc))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    view,
	})
}

// UpdateOrderStatusRequest represents the request body for a status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus handles PATCH /api/v1/admin/orders/:id/status
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	err := lifecycle().SetStatus(c.Param("id"), req.Status)
	if err != nil {
		middleware.RecordOrderOperation("update_status", false)
		switch {
		case errors.Is(err, store.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": "Status must be one of Pending, In Progress, Completed, Cancelled",
				},
			})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found",
				},
			})
		default:
			log.Printf("failed to update order status: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update order status",
				},
			})
		}
		return
	}

	middleware.RecordOrderOperation("update_status", true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// DeliverOrder handles POST /api/v1/admin/orders/:id/deliver - uploads the
// final artifact, completes the order, and emails the customer. An email
// failure is reported as email_sent=false on an otherwise successful
// response, never as a hard failure.
func DeliverOrder(c *gin.Context) {
	order, err := orderStore.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found",
				},
			})
			return
		}
		log.Printf("failed to load order for delivery: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order",
			},
		})
		return
	}

	price := c.PostForm("price")
	fileHeader, fileErr := c.FormFile("file")
	if fileErr != nil {
		fileHeader = nil
	}
	if fileHeader != nil {
		if err := utils.ValidateUploadFile(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_FILE",
					"message": err.Error(),
				},
			})
			return
		}
	}

	result, err := lifecycle().Deliver(order, fileHeader, price)
	if err != nil {
		middleware.RecordOrderOperation("deliver", false)
		switch {
		case errors.Is(err, services.ErrMissingDeliveryFile):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_FILE",
					"message": "Please attach the final delivery file.",
				},
			})
		case errors.Is(err, services.ErrMissingPrice):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_PRICE",
					"message": "Please enter the final price for the order.",
				},
			})
		default:
			log.Printf("failed to deliver order %s: %v", order.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DELIVERY_FAILED",
					"message": "Failed to complete delivery",
				},
			})
		}
		return
	}

	middleware.RecordOrderOperation("deliver", true)
	message := "Order delivered and customer notified"
	if !result.EmailSent {
		message = "Order delivered, but the notification email failed"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"order":        result.Order,
			"download_url": result.DownloadURL,
			"email_sent":   result.EmailSent,
		},
		"message": message,
	})
}

// DeleteOrder handles DELETE /api/v1/admin/orders/:id - hard delete
func DeleteOrder(c *gin.Context) {
	err := orderStore.Delete(c.Param("id"))
	if err != nil {
		middleware.RecordOrderOperation("delete", false)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found",
				},
			})
			return
		}
		log.Printf("failed to delete order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete order",
			},
		})
		return
	}

	middleware.RecordOrderOperation("delete", true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// StreamOrders handles GET /api/v1/admin/orders/stream - a server-sent-event
// stream of order snapshots. Every mutation pushes a fresh "orders" event with
// the full filtered view; a post-initial-load arrival additionally pushes a
// transient "notification" event. The subscription is cancelled when the
// client disconnects.
func StreamOrders(c *gin.Context) {
	statusFilter := c.DefaultQuery("status", services.FilterAll)
	sortDir := c.DefaultQuery("sort", services.SortDesc)

	snapshots, cancel := orderStore.Subscribe()
	defer cancel()

	middleware.SubscriberConnected()
	defer middleware.SubscriberDisconnected()

	feed := services.NewOrderFeed()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return false
			}
			notification := feed.Apply(snapshot)
			c.SSEvent("orders", feed.View(statusFilter, sortDir))
			if notification != nil {
				c.SSEvent("notification", notification)
			}
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
