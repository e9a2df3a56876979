package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShanAhmd/HiDrawpix/services"
	"github.com/ShanAhmd/HiDrawpix/utils"
)

// adminNamespaces are the upload destinations available to authenticated
// admins. Customers are confined to order attachments.
var adminNamespaces = map[string]bool{
	services.NamespaceOrderAttachments: true,
	services.NamespaceDeliveryFiles:    true,
	services.NamespacePortfolioImages:  true,
}

// UploadAttachment handles POST /api/v1/uploads - public upload of an order
// attachment. Returns the stable retrieval URL for the stored object.
func UploadAttachment(c *gin.Context) {
	uploadTo(c, services.NamespaceOrderAttachments)
}

// UploadAdminFile handles POST /api/v1/admin/uploads?namespace= - admin upload
// into any known namespace.
func UploadAdminFile(c *gin.Context) {
	namespace := c.DefaultQuery("namespace", services.NamespaceDeliveryFiles)
	if !adminNamespaces[namespace] {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_NAMESPACE",
				"message": "Unknown upload namespace",
			},
		})
		return
	}
	uploadTo(c, namespace)
}

func uploadTo(c *gin.Context, namespace string) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "A file is required",
			},
		})
		return
	}

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

	fileURL, err := services.GetS3Service().UploadFile(fileHeader, namespace)
	if err != nil {
		log.Printf("failed to upload file to %s: %v", namespace, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to upload file",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"url": fileURL,
		},
	})
}
