package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shophub/backend/internal/events"
	"github.com/shophub/backend/internal/logging"
	"github.com/shophub/backend/internal/models"
	"github.com/shophub/backend/internal/service"
	"github.com/shophub/backend/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *events.Producer
}

func (h *AuthHTTP) publish(c echo.Context, event map[string]any, userID uint) {
	ctx, cancel := publishCtx(c)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicUserEvents, fmt.Sprint(userID), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func userView(u *models.User) transport.UserView {
	return transport.UserView{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "Invalid body")
	}

	user, token, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("register_error", "status", 400, "error", err)
			return errorJSON(c, http.StatusBadRequest, "All fields are required")
		case errors.Is(err, service.ErrConflict):
			l.Warn("register_error", "status", 400, "error", err)
			return errorJSON(c, http.StatusBadRequest, "User already exists")
		default:
			l.Error("register_error", "status", 500, "error", err)
			return errorJSON(c, http.StatusInternalServerError, "Server error")
		}
	}

	h.publish(c, map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	}, user.ID)

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, transport.AuthResponse{
		Message: "User created successfully",
		Token:   token,
		User:    userView(user),
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "Invalid body")
	}

	user, token, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("login_error", "status", 400, "error", err)
			return errorJSON(c, http.StatusBadRequest, "Invalid credentials")
		}
		l.Error("login_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Server error")
	}

	h.publish(c, map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	}, user.ID)

	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    userView(user),
	})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.me")

	id, err := userID(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.Me(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("me_error", "status", 404, "error", err)
			return errorJSON(c, http.StatusNotFound, "User not found")
		}
		l.Error("me_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"user": userView(user)})
}
