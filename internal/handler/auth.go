package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/RajSapale04/Meditrack/internal/auth"
	"github.com/RajSapale04/Meditrack/internal/model"
	"github.com/RajSapale04/Meditrack/internal/oauth"
	"github.com/RajSapale04/Meditrack/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const oauthStateCookie = "oauth_state"

// tokenIssuer is the slice of auth.Tokens the handler needs.
type tokenIssuer interface {
	Issue(userID string) (string, error)
}

type AuthHandler struct {
	users     *store.UserStore
	tokens    tokenIssuer
	google    *oauth.Google // nil when Google login is not configured
	clientURL string
	secure    bool
	logger    *slog.Logger
}

func NewAuthHandler(users *store.UserStore, tokens *auth.Tokens, google *oauth.Google, clientURL string, secure bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:     users,
		tokens:    tokens,
		google:    google,
		clientURL: strings.TrimSuffix(clientURL, "/"),
		secure:    secure,
		logger:    logger,
	}
}

// validateRegistration returns the first failing rule's message, or "".
func validateRegistration(name, email, password string) string {
	if len(strings.TrimSpace(name)) < 3 {
		return "Name must be at least 3 characters"
	}
	if !emailRegexp.MatchString(email) {
		return "Invalid email format"
	}
	if len(password) < 6 {
		return "Password must be at least 6 characters"
	}
	return ""
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validateRegistration(req.Name, req.Email, req.Password); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := h.users.GetByEmail(email)
	if err != nil {
		h.logger.Error("register lookup", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if existing != nil {
		writeMessage(w, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	user, err := h.users.CreateLocal(email, string(hash), strings.TrimSpace(req.Name))
	if errors.Is(err, store.ErrEmailTaken) {
		// Lost the race against a concurrent registration; same answer as
		// the lookup above.
		writeMessage(w, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		h.logger.Error("create user", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	if !h.issueSession(w, user.ID) {
		return
	}
	writeMessage(w, http.StatusCreated, "Logged in")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.GetByEmail(email)
	if err != nil {
		h.logger.Error("login lookup", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	// Accounts created through Google only have no password hash and can
	// never match a password login.
	if user == nil || user.PasswordHash == "" {
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	if !h.issueSession(w, user.ID) {
		return
	}
	writeMessage(w, http.StatusOK, "Logged in")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.secure)
	writeMessage(w, http.StatusOK, "Logged out")
}

// Me returns the authenticated account. RequireAuth has already resolved
// it; the password hash never serializes.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]*model.User{"user": user})
}

// GoogleRedirect starts the consent flow, binding it to the callback with
// a state cookie.
func (h *AuthHandler) GoogleRedirect(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		writeMessage(w, http.StatusNotFound, "Google login is not configured")
		return
	}

	state, err := oauth.NewState()
	if err != nil {
		h.logger.Error("oauth state", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secure,
	})

	http.Redirect(w, r, h.google.AuthURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback finishes the flow: verify state, exchange the code, then
// resolve the identity to an account by Google id first, email second,
// creating a password-less account when neither matches.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		writeMessage(w, http.StatusNotFound, "Google login is not configured")
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		h.redirectLoginError(w, r, "state_mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirectLoginError(w, r, "missing_code")
		return
	}

	identity, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Warn("google exchange", "error", err)
		h.redirectLoginError(w, r, "oauth_failed")
		return
	}

	h.finishGoogleLogin(w, r, identity)
}

// finishGoogleLogin resolves the verified identity to an account and starts
// its session. The browser is mid-redirect here, so every failure answers
// with a login-page redirect rather than a JSON body.
func (h *AuthHandler) finishGoogleLogin(w http.ResponseWriter, r *http.Request, identity *oauth.Identity) {
	user, err := h.resolveGoogleUser(identity)
	if err != nil {
		h.logger.Error("resolve google user", "error", err)
		h.redirectLoginError(w, r, "server_error")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Error("issue token", "error", err)
		h.redirectLoginError(w, r, "server_error")
		return
	}
	auth.SetSessionCookie(w, token, h.secure)
	http.Redirect(w, r, h.clientURL+"/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) resolveGoogleUser(id *oauth.Identity) (*model.User, error) {
	user, err := h.users.GetByGoogleID(id.Sub)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	// A local account with the same email gets the Google identity linked
	// so the person ends up with one account, not two.
	user, err = h.users.GetByEmail(id.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return h.users.LinkGoogle(user.ID, id.Sub, id.Avatar)
	}

	return h.users.CreateGoogle(id.Sub, id.Email, id.Name, id.Avatar)
}

func (h *AuthHandler) redirectLoginError(w http.ResponseWriter, r *http.Request, reason string) {
	http.Redirect(w, r, h.clientURL+"/login?error="+reason, http.StatusSeeOther)
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, userID string) bool {
	token, err := h.tokens.Issue(userID)
	if err != nil {
		h.logger.Error("issue token", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return false
	}
	auth.SetSessionCookie(w, token, h.secure)
	return true
}
