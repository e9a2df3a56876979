package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShanAhmd/HiDrawpix/config"
	"github.com/ShanAhmd/HiDrawpix/middleware"
	"github.com/ShanAhmd/HiDrawpix/services"
)

// SignInRequest represents the request body for admin sign-in
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignIn handles POST /api/v1/auth/signin - exchanges credentials for tokens
// through the identity provider. The application never sees or stores
// passwords beyond forwarding them.
func SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Email and password are required",
			},
		})
		return
	}

	auth0 := services.NewAuth0Service(config.GetConfig())
	tokens, err := auth0.SignIn(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_CREDENTIALS",
					"message": "Invalid email or password",
				},
			})
			return
		}
		log.Printf("sign-in failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "AUTH_ERROR",
				"message": "Sign-in failed. Please try again.",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tokens,
	})
}

// SignUpRequest represents the request body for admin sign-up
type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// SignUp handles POST /api/v1/auth/signup - creates an admin account at the
// identity provider
func SignUp(c *gin.Context) {
	var req SignUpRequest
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

	auth0 := services.NewAuth0Service(config.GetConfig())
	if err := auth0.SignUp(req.Email, req.Password, req.Name); err != nil {
		log.Printf("sign-up failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "AUTH_ERROR",
				"message": "Sign-up failed. Please try again.",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created. You can now sign in.",
	})
}

// SignOut handles POST /api/v1/auth/signout. Tokens are stateless, so the
// server has nothing to revoke; clients discard the token and tear down
// their live subscriptions.
func SignOut(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Signed out",
	})
}

// Me handles GET /api/v1/admin/me - the signed-in admin's profile. The user id
// comes from the validated token; name and email are looked up at the identity
// provider with the caller's own access token.
func Me(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TOKEN",
				"message": "No authenticated user",
			},
		})
		return
	}

	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TOKEN",
				"message": err.Error(),
			},
		})
		return
	}

	auth0 := services.NewAuth0Service(config.GetConfig())
	userInfo, err := auth0.GetUserInfo(accessToken)
	if err != nil {
		log.Printf("userinfo lookup failed for %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "AUTH_ERROR",
				"message": "Could not load profile",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user_id": userID,
			"email":   userInfo.Email,
			"name":    userInfo.Name,
		},
	})
}
