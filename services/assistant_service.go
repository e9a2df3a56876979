package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	appConfig "github.com/ShanAhmd/HiDrawpix/config"
	"github.com/ShanAhmd/HiDrawpix/models"
)

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	Sender string `json:"sender" binding:"required,oneof=user bot"`
	Text   string `json:"text" binding:"required"`
}

// AssistantInterface is the conversational AI endpoint consumed by the chat
// controller.
type AssistantInterface interface {
	GenerateReply(history []ChatMessage, newMessage string) (string, error)
}

// AssistantService calls the Gemini generateContent REST API.
type AssistantService struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

var assistantInstance AssistantInterface

// InitAssistantService initializes the assistant from configuration
func InitAssistantService() (AssistantInterface, error) {
	cfg := appConfig.GetConfig()
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	assistantInstance = &AssistantService{
		apiKey:   cfg.GeminiAPIKey,
		model:    cfg.GeminiModel,
		endpoint: "https://generativelanguage.googleapis.com/v1beta",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	return assistantInstance, nil
}

// GetAssistantService returns the initialized assistant instance
func GetAssistantService() AssistantInterface {
	return assistantInstance
}

// SetAssistantService sets the assistant instance (primarily for testing)
func SetAssistantService(service AssistantInterface) {
	assistantInstance = service
}

// SetEndpoint overrides the API endpoint (for testing against a local server)
func (s *AssistantService) SetEndpoint(endpoint string) {
	s.endpoint = endpoint
}

// Request/response shapes for the generateContent API. Only the fields the
// application reads are declared.
type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GenerateReply sends the conversation plus the new message to the model and
// returns the reply text.
func (s *AssistantService) GenerateReply(history []ChatMessage, newMessage string) (string, error) {
	contents := make([]geminiContent, 0, len(history)+1)
	for _, msg := range history {
		role := "user"
		if msg.Sender == "bot" {
			role = "model"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: msg.Text}},
		})
	}
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: newMessage}},
	})

	reqBody := geminiRequest{
		Contents: contents,
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: SystemInstruction()}},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.endpoint, s.model, s.apiKey)
	resp, err := s.httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to call generateContent: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generateContent returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("generateContent returned no candidates")
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

// jsonBlockPattern matches a fenced ```json block in an assistant reply.
var jsonBlockPattern = regexp.MustCompile("(?s)```json\\s*(.*?)```")

// ExtractOrderDraft scans assistant output for a fenced JSON block describing
// an order. The output is untrusted: a missing or malformed block is ordinary
// chat text, not an error, and a draft is only ever used to pre-fill the
// order form for human review.
func ExtractOrderDraft(text string) *models.OrderDraft {
	match := jsonBlockPattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}

	var draft models.OrderDraft
	if err := json.Unmarshal([]byte(strings.TrimSpace(match[1])), &draft); err != nil {
		return nil
	}
	if !draft.HasContent() {
		return nil
	}
	return &draft
}

// SystemInstruction builds the assistant's system prompt from the compiled-in
// service catalog.
func SystemInstruction() string {
	titles := make([]string, len(models.Services))
	prices := make([]string, len(models.Services))
	for i, svc := range models.Services {
		titles[i] = svc.Title
		prices[i] = fmt.Sprintf("%s (starts from $%.0f)", svc.Title, svc.MinPrice)
	}

	return fmt.Sprintf(`You are a friendly and professional customer service assistant for "Hi Drawpix," a creative design agency. Your primary goal is to help users place orders by collecting necessary information and answering their questions about services.

Our services include: %s.

When a user wants to place an order, you MUST collect the following details and then format them into a JSON object inside a `+"```json"+` code block:
- customerName: The user's full name.
- contactNumber: The user's phone number.
- email: The user's email address.
- service: The specific service they are interested in. It must be one of the available services.
- details: A detailed description of their requirements.

- Be conversational and helpful.
- If the user asks about prices, refer to the minimum prices: %s.
- Do not make up services or prices.
- Always guide the user to fill out the order form if they haven't provided all the details.
- Only output the JSON object when you have all the required information.`,
		strings.Join(titles, ", "),
		strings.Join(prices, ", "),
	)
}
