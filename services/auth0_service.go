package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ShanAhmd/HiDrawpix/config"
)

// ErrInvalidCredentials is returned by SignIn when Auth0 rejects the
// email/password pair. Callers map it to a 401 rather than a server error.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Auth0UserInfo represents the user information returned from Auth0's /userinfo endpoint
type Auth0UserInfo struct {
	Sub   string `json:"sub"` // Auth0 user ID
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Auth0Tokens is the token set returned from a successful sign-in
type Auth0Tokens struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Auth0Service handles interactions with the Auth0 API. All credential
// handling is delegated to Auth0; the application never stores passwords.
type Auth0Service struct {
	domain       string
	clientID     string
	clientSecret string
	audience     string
	connection   string
	httpClient   *http.Client
}

// NewAuth0Service creates a new Auth0 service instance
func NewAuth0Service(cfg *config.Config) *Auth0Service {
	return &Auth0Service{
		domain:       cfg.Auth0Domain,
		clientID:     cfg.Auth0ClientID,
		clientSecret: cfg.Auth0ClientSecret,
		audience:     cfg.Auth0Audience,
		connection:   cfg.Auth0Connection,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// baseURL returns the Auth0 endpoint root. If the domain already includes a
// protocol (for testing against httptest servers), it is used as-is.
func (s *Auth0Service) baseURL() string {
	if strings.HasPrefix(s.domain, "http://") || strings.HasPrefix(s.domain, "https://") {
		return s.domain
	}
	return "https://" + s.domain
}

// SignIn exchanges an email/password pair for tokens using the resource
// owner password grant.
func (s *Auth0Service) SignIn(email, password string) (*Auth0Tokens, error) {
	payload := map[string]string{
		"grant_type":    "password",
		"username":      email,
		"password":      password,
		"audience":      s.audience,
		"client_id":     s.clientID,
		"client_secret": s.clientSecret,
		"scope":         "openid profile email",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode token request: %w", err)
	}

	resp, err := s.httpClient.Post(s.baseURL()+"/oauth/token", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to call token endpoint: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("token endpoint returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var tokens Auth0Tokens
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	return &tokens, nil
}

// SignUp creates a new Auth0 user in the configured database connection.
func (s *Auth0Service) SignUp(email, password, name string) error {
	payload := map[string]string{
		"client_id":  s.clientID,
		"email":      email,
		"password":   password,
		"name":       name,
		"connection": s.connection,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode signup request: %w", err)
	}

	resp, err := s.httpClient.Post(s.baseURL()+"/dbconnections/signup", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to call signup endpoint: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("signup endpoint returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// GetUserInfo fetches user information from Auth0's /userinfo endpoint
// accessToken is the JWT access token from the Authorization header
func (s *Auth0Service) GetUserInfo(accessToken string) (*Auth0UserInfo, error) {
	req, err := http.NewRequest("GET", s.baseURL()+"/userinfo", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Add("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call userinfo endpoint: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("userinfo endpoint returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var userInfo Auth0UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}

	return &userInfo, nil
}
