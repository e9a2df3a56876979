package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShanAhmd/HiDrawpix/middleware"
	"github.com/ShanAhmd/HiDrawpix/models"
	"github.com/ShanAhmd/HiDrawpix/services"
	"github.com/ShanAhmd/HiDrawpix/store"
	"github.com/ShanAhmd/HiDrawpix/utils"
)

// CreateOrderRequest represents the form fields for placing an order. The
// attachment, if any, arrives as the multipart file field "attachment".
type CreateOrderRequest struct {
	CustomerName  string `form:"customer_name" binding:"required"`
	ContactNumber string `form:"contact_number" binding:"required"`
	Email         string `form:"email" binding:"required,email"`
	Service       string `form:"service" binding:"required"`
	Details       string `form:"details" binding:"required"`
}

// CreateOrder handles POST /api/v1/orders - places a new customer order
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBind(&req); err != nil {
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

	// The order form only offers catalog services; reject anything else
	// before it reaches the store.
	if _, ok := models.ServiceByTitle(req.Service); !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNKNOWN_SERVICE",
				"message": "The selected service is not offered",
			},
		})
		return
	}

	// Optional attachment: validate and upload before the record is created
	// so a rejected file never leaves a half-placed order behind.
	var fileURL string
	if fileHeader, err := c.FormFile("attachment"); err == nil {
		if err := utils.ValidateUploadFile(fileHeader); err != nil {
			uploadErr := &utils.FileUploadError{}
			code := "INVALID_FILE"
			if errors.As(err, &uploadErr) {
				code = uploadErr.Code
			}
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    code,
					"message": err.Error(),
				},
			})
			return
		}

		fileURL, err = services.GetS3Service().UploadFile(fileHeader, services.NamespaceOrderAttachments)
		if err != nil {
			log.Printf("failed to upload order attachment: %v", err)
			middleware.RecordOrderOperation("create", false)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UPLOAD_FAILED",
					"message": "Failed to place order. Please try again.",
				},
			})
			return
		}
	}

	order := models.Order{
		CustomerName:  req.CustomerName,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Service:       req.Service,
		Details:       req.Details,
		FileURL:       fileURL,
	}

	if _, err := orderStore.Create(&order); err != nil {
		log.Printf("failed to create order: %v", err)
		middleware.RecordOrderOperation("create", false)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to place order. Please try again.",
			},
		})
		return
	}

	middleware.RecordOrderOperation("create", true)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrderStatus handles GET /api/v1/orders/:id - the public status checker.
// A typo'd id gets a friendly not-found, never a generic error.
func GetOrderStatus(c *gin.Context) {
	id := c.Param("id")

	order, err := orderStore.GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found. Please check your Order ID.",
				},
			})
			return
		}
		log.Printf("failed to look up order %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Could not fetch order status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListServices handles GET /api/v1/services - the compiled-in catalog
func ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    models.Services,
	})
}
