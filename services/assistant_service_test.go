package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShanAhmd/HiDrawpix/models"
)

func TestExtractOrderDraft(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *models.OrderDraft
	}{
		{
			name: "well-formed block",
			text: "Perfect, here is the summary:\n```json\n{\n  \"customerName\": \"John Doe\",\n  \"contactNumber\": \"555-1234\",\n  \"email\": \"john.doe@email.com\",\n  \"service\": \"Logo & Brand Identity\",\n  \"details\": \"Modern minimalist logo.\"\n}\n```\nI will populate the form for you.",
			want: &models.OrderDraft{
				CustomerName:  "John Doe",
				ContactNumber: "555-1234",
				Email:         "john.doe@email.com",
				Service:       "Logo & Brand Identity",
				Details:       "Modern minimalist logo.",
			},
		},
		{
			name: "plain chat text",
			text: "Sure! Could I get your full name and email to start the order?",
			want: nil,
		},
		{
			name: "malformed json treated as chat",
			text: "```json\n{\"customerName\": \"John\",\n```",
			want: nil,
		},
		{
			name: "empty object carries nothing",
			text: "```json\n{}\n```",
			want: nil,
		},
		{
			name: "unknown fields ignored",
			text: "```json\n{\"customerName\": \"Jane\", \"budget\": \"$500\"}\n```",
			want: &models.OrderDraft{CustomerName: "Jane"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractOrderDraft(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateReply(t *testing.T) {
	var captured geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"role": "model",
						"parts": []map[string]string{
							{"text": "Hello! "},
							{"text": "How can I help?"},
						},
					},
				},
			},
		})
	}))
	defer server.Close()

	svc := &AssistantService{
		apiKey:     "test-key",
		model:      "gemini-flash-latest",
		endpoint:   server.URL,
		httpClient: &http.Client{Timeout: time.Second},
	}

	history := []ChatMessage{
		{Sender: "user", Text: "Hi"},
		{Sender: "bot", Text: "Hello, how can I help?"},
	}
	reply, err := svc.GenerateReply(history, "I need a logo")
	require.NoError(t, err)
	assert.Equal(t, "Hello! How can I help?", reply)

	// History roles map onto the API's user/model roles, with the new
	// message appended as the final user turn.
	require.Len(t, captured.Contents, 3)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, "model", captured.Contents[1].Role)
	assert.Equal(t, "user", captured.Contents[2].Role)
	assert.Equal(t, "I need a logo", captured.Contents[2].Parts[0].Text)
	require.NotNil(t, captured.SystemInstruction)
}

func TestGenerateReplyErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := &AssistantService{
		apiKey:     "test-key",
		model:      "gemini-flash-latest",
		endpoint:   server.URL,
		httpClient: &http.Client{Timeout: time.Second},
	}

	_, err := svc.GenerateReply(nil, "hello")
	assert.Error(t, err)
}

func TestSystemInstructionNamesEveryService(t *testing.T) {
	prompt := SystemInstruction()
	for _, svc := range models.Services {
		assert.Contains(t, prompt, svc.Title)
	}
	assert.Contains(t, prompt, "```json")
}
