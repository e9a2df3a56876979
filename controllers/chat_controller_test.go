package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShanAhmd/HiDrawpix/services"
)

// scriptedAssistant returns a canned reply, or an error, for every turn.
type scriptedAssistant struct {
	reply   string
	err     error
	history []services.ChatMessage
	message string
}

func (a *scriptedAssistant) GenerateReply(history []services.ChatMessage, newMessage string) (string, error) {
	a.history = history
	a.message = newMessage
	if a.err != nil {
		return "", a.err
	}
	return a.reply, nil
}

func TestChatPlainReply(t *testing.T) {
	setupTest(t)
	assistant := &scriptedAssistant{reply: "Sure! What kind of logo do you have in mind?"}
	services.SetAssistantService(assistant)
	defer services.SetAssistantService(nil)
	router := newTestRouter()

	w, response := performJSON(t, router, http.MethodPost, "/api/v1/chat", gin.H{
		"history": []gin.H{
			{"sender": "user", "text": "Hi"},
			{"sender": "bot", "text": "Hello! How can I help?"},
		},
		"message": "I need a logo",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := response["data"].(map[string]interface{})
	assert.Equal(t, assistant.reply, data["reply"])
	_, hasDraft := data["order_draft"]
	assert.False(t, hasDraft, "plain chat must not carry a draft")

	require.Len(t, assistant.history, 2)
	assert.Equal(t, "I need a logo", assistant.message)
}

func TestChatReplyWithOrderDraft(t *testing.T) {
	setupTest(t)
	assistant := &scriptedAssistant{
		reply: "Great, here is your order summary:\n```json\n{\"customerName\": \"John Doe\", \"email\": \"john@example.com\", \"service\": \"Logo & Brand Identity\"}\n```",
	}
	services.SetAssistantService(assistant)
	defer services.SetAssistantService(nil)
	router := newTestRouter()

	w, response := performJSON(t, router, http.MethodPost, "/api/v1/chat", gin.H{
		"message": "That's everything",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := response["data"].(map[string]interface{})
	draft, ok := data["order_draft"].(map[string]interface{})
	require.True(t, ok, "a fenced JSON block must surface as a draft")
	assert.Equal(t, "John Doe", draft["customerName"])
	assert.Equal(t, "Logo & Brand Identity", draft["service"])
}

func TestChatAssistantNotConfigured(t *testing.T) {
	setupTest(t)
	services.SetAssistantService(nil)
	router := newTestRouter()

	w, response := performJSON(t, router, http.MethodPost, "/api/v1/chat", gin.H{
		"message": "Hello?",
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "ASSISTANT_UNAVAILABLE", errorCode(t, response))
}

func TestChatAssistantFailure(t *testing.T) {
	setupTest(t)
	services.SetAssistantService(&scriptedAssistant{err: errors.New("upstream timeout")})
	defer services.SetAssistantService(nil)
	router := newTestRouter()

	w, response := performJSON(t, router, http.MethodPost, "/api/v1/chat", gin.H{
		"message": "Hello?",
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "ASSISTANT_ERROR", errorCode(t, response))
}

func TestChatValidation(t *testing.T) {
	setupTest(t)
	services.SetAssistantService(&scriptedAssistant{reply: "hi"})
	defer services.SetAssistantService(nil)
	router := newTestRouter()

	// Missing message.
	w, response := performJSON(t, router, http.MethodPost, "/api/v1/chat", gin.H{
		"history": []gin.H{{"sender": "user", "text": "Hi"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, response))

	// History with an unknown sender.
	w, response = performJSON(t, router, http.MethodPost, "/api/v1/chat", gin.H{
		"history": []gin.H{{"sender": "system", "text": "Hi"}},
		"message": "Hello",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, response))
}
