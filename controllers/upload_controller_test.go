package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAttachment(t *testing.T) {
	s3, _ := setupTest(t)
	router := newTestRouter()

	w, response := performMultipart(t, router, http.MethodPost, "/api/v1/uploads", nil,
		map[string]string{"file": "reference.jpg"})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := response["data"].(map[string]interface{})
	url, _ := data["url"].(string)
	assert.True(t, s3.FileExists(url))
	assert.Contains(t, url, "order-attachments/")
}

func TestUploadAttachmentMissingFile(t *testing.T) {
	setupTest(t)
	router := newTestRouter()

	w, response := performMultipart(t, router, http.MethodPost, "/api/v1/uploads", nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", errorCode(t, response))
}

func TestUploadAttachmentRejectsBadExtension(t *testing.T) {
	s3, _ := setupTest(t)
	router := newTestRouter()

	w, response := performMultipart(t, router, http.MethodPost, "/api/v1/uploads", nil,
		map[string]string{"file": "script.sh"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FILE_FORMAT", errorCode(t, response))
	assert.Equal(t, 0, s3.UploadCount())
}

func TestUploadAdminFileNamespaces(t *testing.T) {
	s3, _ := setupTest(t)
	router := newTestRouter()

	// Default namespace is delivery-files.
	w, response := performMultipart(t, router, http.MethodPost, "/api/v1/admin/uploads", nil,
		map[string]string{"file": "final.zip"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	url := response["data"].(map[string]interface{})["url"].(string)
	assert.Contains(t, url, "delivery-files/")

	w, response = performMultipart(t, router, http.MethodPost, "/api/v1/admin/uploads?namespace=portfolio-images", nil,
		map[string]string{"file": "work.png"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	url = response["data"].(map[string]interface{})["url"].(string)
	assert.Contains(t, url, "portfolio-images/")

	w, response = performMultipart(t, router, http.MethodPost, "/api/v1/admin/uploads?namespace=secrets", nil,
		map[string]string{"file": "dump.zip"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_NAMESPACE", errorCode(t, response))

	// Only the two accepted uploads were stored.
	assert.Equal(t, 2, s3.UploadCount())
}
