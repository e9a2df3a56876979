package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShanAhmd/HiDrawpix/middleware"
	"github.com/ShanAhmd/HiDrawpix/models"
	"github.com/ShanAhmd/HiDrawpix/services"
	"github.com/ShanAhmd/HiDrawpix/store"
	"github.com/ShanAhmd/HiDrawpix/utils"
)

// ListPortfolio handles GET /api/v1/portfolio - public gallery, visible items only
func ListPortfolio(c *gin.Context) {
	items, err := portfolioStore.List(true)
	if err != nil {
		log.Printf("failed to list portfolio: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load portfolio",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// ListPortfolioAdmin handles GET /api/v1/admin/portfolio - includes hidden items
func ListPortfolioAdmin(c *gin.Context) {
	items, err := portfolioStore.List(false)
	if err != nil {
		log.Printf("failed to list portfolio: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load portfolio",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// CreatePortfolioItemRequest represents the form fields for a new gallery item
type CreatePortfolioItemRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required"`
}

// CreatePortfolioItem handles POST /api/v1/admin/portfolio - multipart form
// with a required "image" file
func CreatePortfolioItem(c *gin.Context) {
	var req CreatePortfolioItemRequest
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

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_IMAGE",
				"message": "A portfolio image is required",
			},
		})
		return
	}
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

	imageURL, err := services.GetS3Service().UploadFile(fileHeader, services.NamespacePortfolioImages)
	if err != nil {
		log.Printf("failed to upload portfolio image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to upload portfolio image",
			},
		})
		return
	}

	item := models.PortfolioItem{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    imageURL,
	}
	if _, err := portfolioStore.Create(&item); err != nil {
		log.Printf("failed to create portfolio item; orphaned image at %s: %v", imageURL, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create portfolio item",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    item,
	})
}

// UpdatePortfolioStatusRequest represents the request body for toggling visibility
type UpdatePortfolioStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePortfolioStatus handles PATCH /api/v1/admin/portfolio/:id/status
func UpdatePortfolioStatus(c *gin.Context) {
	var req UpdatePortfolioStatusRequest
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

	err := portfolioStore.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": "Status must be Show or Hide",
				},
			})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ITEM_NOT_FOUND",
					"message": "Portfolio item not found",
				},
			})
		default:
			log.Printf("failed to update portfolio item: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update portfolio item",
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// DeletePortfolioItem handles DELETE /api/v1/admin/portfolio/:id. The record
// is deleted first, then its image is released best-effort: an orphaned blob
// is a lesser failure than a record referencing nothing, so a failed image
// delete is logged and the operation still succeeds.
func DeletePortfolioItem(c *gin.Context) {
	item, err := portfolioStore.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ITEM_NOT_FOUND",
					"message": "Portfolio item not found",
				},
			})
			return
		}
		log.Printf("failed to load portfolio item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load portfolio item",
			},
		})
		return
	}

	if err := portfolioStore.Delete(item.ID); err != nil {
		log.Printf("failed to delete portfolio item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete portfolio item",
			},
		})
		return
	}

	if err := services.GetS3Service().DeleteFileByURL(item.ImageURL); err != nil {
		log.Printf("portfolio item %s deleted but image release failed, orphaned object at %s: %v", item.ID, item.ImageURL, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// StreamPortfolio handles GET /api/v1/admin/portfolio/stream - SSE snapshots
// of the full gallery, hidden items included.
func StreamPortfolio(c *gin.Context) {
	snapshots, cancel := portfolioStore.Subscribe()
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
			c.SSEvent("portfolio", snapshot)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
