package handlers

import (
	"net/http"
	"time"

	"seo-spinner/internal/auth"
	"seo-spinner/internal/models"
	"seo-spinner/internal/services"

	"go.uber.org/zap"
)

const refreshCookie = "refresh_token"

type AuthHandler struct {
	authSvc      *services.AuthService
	logr         *zap.Logger
	secureCookie bool
}

func NewAuthHandler(svc *services.AuthService, logr *zap.Logger, secureCookie bool) *AuthHandler {
	return &AuthHandler{authSvc: svc, logr: logr, secureCookie: secureCookie}
}

type loginReq struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	DeviceInfo string `json:"device_info"`
}

type ldapReq struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	DeviceInfo string `json:"device_info"`
}

type tokenResp struct {
	Success      bool             `json:"success"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	ExpiresAt    time.Time        `json:"access_expires_at"`
	User         *models.UserInfo `json:"user,omitempty"`
}

// POST /auth/login
func (h *AuthHandler) LoginLocal(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if !decodeJSON(w, r, &req) {
		return
	}
	pair, user, err := h.authSvc.LoginLocal(r.Context(), req.Email, req.Password, req.DeviceInfo)
	if err != nil {
		h.logr.Warn("local login failed", zap.Error(err), zap.String("email", req.Email))
		writeError(w, h.logr, "local login failed", err, "invalid credentials")
		return
	}
	h.respondTokens(w, pair, user)
}

// POST /auth/ldap
func (h *AuthHandler) LoginLDAP(w http.ResponseWriter, r *http.Request) {
	var req ldapReq
	if !decodeJSON(w, r, &req) {
		return
	}
	pair, user, err := h.authSvc.LoginLDAP(r.Context(), req.Username, req.Password, req.DeviceInfo)
	if err != nil {
		h.logr.Warn("ldap login failed", zap.Error(err), zap.String("username", req.Username))
		writeError(w, h.logr, "ldap login failed", err, "invalid credentials")
		return
	}
	h.respondTokens(w, pair, user)
}

// POST /auth/refresh  (reads refresh token from cookie OR body)
type refreshReq struct {
	RefreshToken string `json:"refresh_token,omitempty"`
	DeviceInfo   string `json:"device_info,omitempty"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	if c, err := r.Cookie(refreshCookie); err == nil && c.Value != "" {
		req.RefreshToken = c.Value
	}
	if req.RefreshToken == "" {
		badRequest(w, "refresh token required")
		return
	}

	pair, err := h.authSvc.Refresh(r.Context(), req.RefreshToken, req.DeviceInfo)
	if err != nil {
		h.logr.Warn("refresh failed", zap.Error(err))
		writeError(w, h.logr, "refresh failed", err, "invalid refresh token")
		return
	}
	h.respondTokens(w, pair, nil)
}

// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	if c, err := r.Cookie(refreshCookie); err == nil && c.Value != "" {
		req.RefreshToken = c.Value
	}
	if req.RefreshToken == "" {
		badRequest(w, "refresh token required")
		return
	}

	if err := h.authSvc.Logout(r.Context(), req.RefreshToken); err != nil {
		writeError(w, h.logr, "logout failed", err, "failed to logout")
		return
	}
	h.setRefreshCookie(w, "", time.Unix(0, 0))
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) respondTokens(w http.ResponseWriter, pair *auth.TokenPair, user *models.UserInfo) {
	h.setRefreshCookie(w, pair.RefreshToken, pair.RefreshExp)
	writeJSON(w, http.StatusOK, tokenResp{
		Success:      true,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessExp,
		User:         user,
	})
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    token,
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		Path:     "/api/v1/auth",
		SameSite: http.SameSiteLaxMode,
	})
}
