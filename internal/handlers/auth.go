package handlers

import (
	"errors"
	"net/http"

	"github.com/ndome/investhub/internal/apperrors"
	"github.com/ndome/investhub/internal/handlers/render"
	"github.com/ndome/investhub/internal/logger"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func handleRegister(authService authService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		creds, err := render.BindAndValidate[credentialsRequest](w, r)
		if err != nil {
			return
		}

		token, err := authService.Register(r.Context(), creds.Username, creds.Password)

		switch {
		case err == nil:
			render.JSONWithStatus(w, tokenResponse{Token: token}, http.StatusCreated)
		case errors.Is(err, apperrors.ErrInvestorAlreadyExists):
			render.ServiceError(w, "Username already taken", http.StatusConflict)
		default:
			l.Error("Failed to register investor", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleLogin(authService authService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		creds, err := render.BindAndValidate[credentialsRequest](w, r)
		if err != nil {
			return
		}

		token, err := authService.Login(r.Context(), creds.Username, creds.Password)

		switch {
		case err == nil:
			render.JSON(w, tokenResponse{Token: token})
		case errors.Is(err, apperrors.ErrInvestorNotFound):
			render.ServiceError(w, "Invalid username or password", http.StatusUnauthorized)
		default:
			l.Error("Failed to login investor", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
