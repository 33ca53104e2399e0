package controllers

import (
	"net/http"

	"github.com/tienditamejorada/tiendita-backend/api/middleware"
	"github.com/tienditamejorada/tiendita-backend/api/responses"
	"github.com/tienditamejorada/tiendita-backend/api/validators"
	"github.com/tienditamejorada/tiendita-backend/internal/auth"
	"github.com/tienditamejorada/tiendita-backend/pkg/auth/session"
	apperrors "github.com/tienditamejorada/tiendita-backend/pkg/errors"
	"github.com/tienditamejorada/tiendita-backend/pkg/logger"
)

type loginResponse struct {
	Success bool             `json:"success"`
	User    auth.UserPayload `json:"user"`
	Token   string           `json:"token"`
}

// Login authenticates a user and mints a session token.
func Login(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		meta := session.Metadata{
			IP:        middleware.ClientIP(r),
			UserAgent: r.UserAgent(),
		}
		res, err := svc.Login(ctx, req, meta)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithUsuarioID(ctx, res.User.ID), "auth.login")
		}
		responses.WriteJSON(w, http.StatusOK, loginResponse{
			Success: true,
			User:    res.User,
			Token:   res.Token,
		})
	}
}

type registerResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	UserID   uint   `json:"user_id"`
	TiendaID uint   `json:"tienda_id"`
}

// Register creates a tienda together with its owner account.
func Register(svc auth.RegisterService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		res, err := svc.Register(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithTiendaID(ctx, res.TiendaID), "auth.register")
		}
		responses.WriteJSON(w, http.StatusOK, registerResponse{
			Success:  true,
			Message:  "Usuario registrado exitosamente",
			UserID:   res.UserID,
			TiendaID: res.TiendaID,
		})
	}
}

// Logout revokes the supplied session token. Revocation is idempotent, so a
// second logout with the same token returns the same success response rather
// than failing resolution; only a missing token is rejected.
func Logout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token := validators.ExtractSessionToken(r)
		if token == "" {
			responses.WriteError(ctx, logg, w,
				apperrors.New(apperrors.CodeUnauthorized, "No autorizado"))
			return
		}

		if err := svc.Logout(ctx, token); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Sesión cerrada exitosamente",
		})
	}
}
