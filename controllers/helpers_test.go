package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ShanAhmd/HiDrawpix/models"
	"github.com/ShanAhmd/HiDrawpix/services"
)

// testAdminUserID is the subject claim the admin stand-in middleware injects.
const testAdminUserID = "auth0|test-admin"

// setupTest wires an in-memory database and fresh mocks, and returns them for
// assertions. Handlers are exercised without the auth middleware, matching how
// they run once the middleware has admitted the request.
func setupTest(t *testing.T) (*services.MockS3Service, *services.MockEmailSender) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	// A second pooled connection would see its own empty in-memory database,
	// so pin the pool to one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access test database pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Order{}, &models.PortfolioItem{}, &models.Offer{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	InitStores(db)

	s3 := services.NewMockS3Service()
	s3.SetAsMockForTesting()
	email := services.NewMockEmailSender()
	email.SetAsMockForTesting()
	return s3, email
}

func newTestRouter() *gin.Engine {
	router := gin.New()
	v1 := router.Group("/api/v1")
	{
		v1.GET("/services", ListServices)
		v1.GET("/portfolio", ListPortfolio)
		v1.GET("/offers", ListOffers)
		v1.POST("/orders", CreateOrder)
		v1.GET("/orders/:id", GetOrderStatus)
		v1.POST("/uploads", UploadAttachment)
		v1.POST("/chat", Chat)

		auth := v1.Group("/auth")
		{
			auth.POST("/signin", SignIn)
			auth.POST("/signup", SignUp)
			auth.POST("/signout", SignOut)
		}

		admin := v1.Group("/admin")
		// Stand-in for EnsureValidToken: mark the request as an admitted admin
		// the way the middleware does after validating a token.
		admin.Use(func(c *gin.Context) {
			c.Set("user_id", testAdminUserID)
			c.Next()
		})
		{
			admin.GET("/me", Me)

			admin.GET("/orders", ListOrders)
			admin.GET("/orders/stream", StreamOrders)
			admin.PATCH("/orders/:id/status", UpdateOrderStatus)
			admin.POST("/orders/:id/deliver", DeliverOrder)
			admin.DELETE("/orders/:id", DeleteOrder)

			admin.GET("/portfolio", ListPortfolioAdmin)
			admin.GET("/portfolio/stream", StreamPortfolio)
			admin.POST("/portfolio", CreatePortfolioItem)
			admin.PATCH("/portfolio/:id/status", UpdatePortfolioStatus)
			admin.DELETE("/portfolio/:id", DeletePortfolioItem)

			admin.GET("/offers", ListOffersAdmin)
			admin.GET("/offers/stream", StreamOffers)
			admin.POST("/offers", CreateOffer)
			admin.PATCH("/offers/:id/status", UpdateOfferStatus)
			admin.DELETE("/offers/:id", DeleteOffer)

			admin.POST("/uploads", UploadAdminFile)
		}
	}
	return router
}

// performJSON sends a JSON request through the router and decodes the
// response envelope.
func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w, decodeResponse(t, w)
}

// performMultipart sends a multipart form with the given fields and files.
func performMultipart(t *testing.T, router *gin.Engine, method, path string, fields map[string]string, files map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for field, filename := range files {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("test file content"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w, decodeResponse(t, w)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return response
}

func errorCode(t *testing.T, response map[string]interface{}) string {
	errObj, ok := response["error"].(map[string]interface{})
	require.True(t, ok, "response should carry an error object: %v", response)
	code, _ := errObj["code"].(string)
	return code
}

func placeTestOrder(t *testing.T, router *gin.Engine) string {
	w, response := performMultipart(t, router, http.MethodPost, "/api/v1/orders", map[string]string{
		"customer_name":  "Jane Doe",
		"contact_number": "555-0100",
		"email":          "jane@example.com",
		"service":        "Website Design",
		"details":        "Need a 5-page site",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data, ok := response["data"].(map[string]interface{})
	require.True(t, ok)
	id, ok := data["id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, id)
	return id
}
