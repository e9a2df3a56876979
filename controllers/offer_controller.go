package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShanAhmd/HiDrawpix/middleware"
	"github.com/ShanAhmd/HiDrawpix/models"
	"github.com/ShanAhmd/HiDrawpix/store"
)

// ListOffers handles GET /api/v1/offers - public list, active offers only
func ListOffers(c *gin.Context) {
	offers, err := offerStore.List(true)
	if err != nil {
		log.Printf("failed to list offers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load offers",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    offers,
	})
}

// ListOffersAdmin handles GET /api/v1/admin/offers - includes inactive offers
func ListOffersAdmin(c *gin.Context) {
	offers, err := offerStore.List(false)
	if err != nil {
		log.Printf("failed to list offers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load offers",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    offers,
	})
}

// CreateOfferRequest represents the request body for a new promotional offer
type CreateOfferRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Price       string `json:"price" binding:"required"`
}

// CreateOffer handles POST /api/v1/admin/offers
func CreateOffer(c *gin.Context) {
	var req CreateOfferRequest
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

	offer := models.Offer{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	}
	if _, err := offerStore.Create(&offer); err != nil {
		log.Printf("failed to create offer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create offer",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    offer,
	})
}

// UpdateOfferStatusRequest represents the request body for toggling activity
type UpdateOfferStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOfferStatus handles PATCH /api/v1/admin/offers/:id/status
func UpdateOfferStatus(c *gin.Context) {
	var req UpdateOfferStatusRequest
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

	err := offerStore.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": "Status must be Active or Inactive",
				},
			})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "OFFER_NOT_FOUND",
					"message": "Offer not found",
				},
			})
		default:
			log.Printf("failed to update offer: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update offer",
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// DeleteOffer handles DELETE /api/v1/admin/offers/:id
func DeleteOffer(c *gin.Context) {
	err := offerStore.Delete(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "OFFER_NOT_FOUND",
					"message": "Offer not found",
				},
			})
			return
		}
		log.Printf("failed to delete offer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete offer",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// StreamOffers handles GET /api/v1/admin/offers/stream - SSE snapshots of all
// offers, inactive included.
func StreamOffers(c *gin.Context) {
	snapshots, cancel := offerStore.Subscribe()
	defer cancel()

	middleware.SubscriberConnected()
	defer middleware.SubscriberDisconnected()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("offers", snapshot)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
