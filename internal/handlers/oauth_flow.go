package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"kidventure/internal/models"
)

// OAuthProvider defines provider configuration and metadata
type OAuthProvider struct {
	Name        string
	Config      *oauth2.Config
	UserInfoURL string
}

type oauthUserInfo struct {
	Subject string
	Email   string
	Name    string
}

func (p OAuthProvider) configured() bool {
	return p.Config != nil && p.Config.ClientID != "" && p.Config.ClientSecret != ""
}

// StartOAuth initiates the parent sign-in flow for a provider
func (h *AuthHandler) StartOAuth(w http.ResponseWriter, r *http.Request) {
	providerKey := r.PathValue("provider")
	provider, ok := h.oauthProviders[providerKey]
	if !ok || !provider.configured() {
		respondWithError(w, http.StatusBadRequest, "OAuth provider not configured", "", nil)
		return
	}

	state := uuid.New().String()
	h.setTempCookie(w, "oauth_state", state, 10*time.Minute)
	h.setTempCookie(w, "oauth_provider", providerKey, 10*time.Minute)

	config := *provider.Config
	config.RedirectURL = h.oauthRedirectURL(providerKey)
	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOnline)

	http.Redirect(w, r, authURL, http.StatusFound)
}

// OAuthCallback completes the flow: verifies state, exchanges the code,
// fetches the user info and signs the parent in
func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	providerKey := r.PathValue("provider")
	provider, ok := h.oauthProviders[providerKey]
	if !ok || !provider.configured() {
		respondWithError(w, http.StatusBadRequest, "OAuth provider not configured", "", nil)
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		respondWithError(w, http.StatusBadRequest, "OAuth state mismatch", "oauth state check failed", err)
		return
	}
	h.clearTempCookie(w, "oauth_state")
	h.clearTempCookie(w, "oauth_provider")

	code := r.URL.Query().Get("code")
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "Missing authorization code", "", nil)
		return
	}

	config := *provider.Config
	config.RedirectURL = h.oauthRedirectURL(providerKey)
	token, err := config.Exchange(r.Context(), code)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Sign-in failed", "oauth code exchange failed", err)
		return
	}

	info, err := fetchOAuthUserInfo(r, &config, token, provider.UserInfoURL)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Sign-in failed", "oauth userinfo fetch failed", err)
		return
	}

	// The provider subject is the stable parent identity on this device
	parentID := providerKey + ":" + info.Subject
	h.store.SignInParent(parentID)

	sessionToken, err := h.sessions.Issue(models.RoleParent, parentID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create session", "token issue failed", err)
		return
	}
	respondJSON(w, http.StatusOK, loginResponse{Token: sessionToken, Role: models.RoleParent, ProfileID: parentID})
}

func fetchOAuthUserInfo(r *http.Request, config *oauth2.Config, token *oauth2.Token, userInfoURL string) (oauthUserInfo, error) {
	client := config.Client(r.Context(), token)
	resp, err := client.Get(userInfoURL)
	if err != nil {
		return oauthUserInfo{}, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return oauthUserInfo{}, fmt.Errorf("user info request returned %d: %s", resp.StatusCode, body)
	}

	var raw struct {
		ID    string `json:"id"`
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return oauthUserInfo{}, fmt.Errorf("failed to decode user info: %w", err)
	}

	subject := raw.Sub
	if subject == "" {
		subject = raw.ID
	}
	if subject == "" {
		return oauthUserInfo{}, fmt.Errorf("user info is missing a subject id")
	}
	return oauthUserInfo{Subject: subject, Email: raw.Email, Name: raw.Name}, nil
}

func (h *AuthHandler) oauthRedirectURL(providerKey string) string {
	return fmt.Sprintf("%s/api/auth/%s/callback", h.redirectBaseURL, providerKey)
}

func (h *AuthHandler) setTempCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearTempCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
