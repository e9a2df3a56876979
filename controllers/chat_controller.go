package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShanAhmd/HiDrawpix/services"
)

// ChatRequest represents a chat turn: the conversation so far plus the
// customer's new message.
type ChatRequest struct {
	History []services.ChatMessage `json:"history" binding:"dive"`
	Message string                 `json:"message" binding:"required"`
}

// Chat handles POST /api/v1/chat - forwards the conversation to the AI
// assistant. If the reply carries a well-formed order draft it is returned
// alongside the text so the storefront can pre-fill the order form; the
// customer always reviews before submitting.
func Chat(c *gin.Context) {
	assistant := services.GetAssistantService()
	if assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ASSISTANT_UNAVAILABLE",
				"message": "The AI Assistant is not configured.",
			},
		})
		return
	}

	var req ChatRequest
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

	reply, err := assistant.GenerateReply(req.History, req.Message)
	if err != nil {
		log.Printf("assistant request failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ASSISTANT_ERROR",
				"message": "I'm sorry, I encountered an error. Please try again later.",
			},
		})
		return
	}

	response := gin.H{
		"success": true,
		"data": gin.H{
			"reply": reply,
		},
	}
	if draft := services.ExtractOrderDraft(reply); draft != nil {
		response["data"].(gin.H)["order_draft"] = draft
	}

	c.JSON(http.StatusOK, response)
}
