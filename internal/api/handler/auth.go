package handler

import (
	"net/http"

	"github.com/heartquiz/heartgame-go/internal/api/apierr"
	"github.com/heartquiz/heartgame-go/internal/api/response"
	"github.com/heartquiz/heartgame-go/internal/services/account"
)

// AuthHandler handles signup and login endpoints
type AuthHandler struct {
	accounts *account.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accounts *account.Service) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
	}
}

// Signup handles POST /api/auth/signup (form-encoded)
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid form body"))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username is required"))
		return
	}
	if password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("password is required"))
		return
	}

	if _, err := h.accounts.Signup(r.Context(), username, password); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Message{Message: "User created successfully"})
}

// Login handles POST /api/auth/login (form-encoded)
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid form body"))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username and password are required"))
		return
	}

	user, err := h.accounts.Login(r.Context(), username, password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Login{
		Message: "Login successful",
		UserID:  string(user.ID),
	})
}
