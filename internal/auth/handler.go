package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atelier-hq/atelier/internal/mail"
	"github.com/atelier-hq/atelier/internal/platform/httpx"
	"github.com/atelier-hq/atelier/internal/shared"
	"github.com/atelier-hq/atelier/jobs"
)

// MailQueue enqueues transactional emails for background delivery.
type MailQueue interface {
	EnqueueSendEmail(ctx context.Context, payload jobs.SendEmailPayload) error
}

// HandlerConfig carries the presentation settings used in emails.
type HandlerConfig struct {
	ProjectName  string
	FrontendHost string
}

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	mw        Middleware
	queue     MailQueue
	cfg       HandlerConfig
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw Middleware, queue MailQueue, cfg HandlerConfig) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		mw:        mw,
		queue:     queue,
		cfg:       cfg,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login/access-token", h.loginAccessToken)
	r.With(h.mw.RequireUser).Post("/login/test-token", h.testToken)
	r.Post("/password-recovery/{email}", h.recoverPassword)
	r.Post("/reset-password", h.resetPassword)
	r.With(h.mw.RequireSuperuser).Post("/password-recovery-html-content/{email}", h.recoverPasswordHTMLContent)
}

// tokenResponse is the OAuth2-compatible login response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// messageResponse is a plain confirmation payload.
type messageResponse struct {
	Message string `json:"message"`
}

// userResponse is the public view of an authenticated account.
type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name,omitempty"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}

func newUserResponse(u *User) userResponse {
	return userResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		FullName:    u.FullName,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
	}
}

func (h *Handler) loginAccessToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed form body")
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		httpx.ValidationProblem(w, map[string]string{"username": "required", "password": "required"})
		return
	}

	user, err := h.service.Authenticate(r.Context(), email, password)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Login Failed", "Incorrect email or password")
		return
	}
	if !user.IsActive {
		httpx.RespondError(w, shared.ErrInactiveUser)
		return
	}

	token, err := h.service.IssueAccessToken(user)
	if err != nil {
		h.logger.Error("issue access token", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) testToken(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, newUserResponse(UserFromContext(r.Context())))
}

func (h *Handler) recoverPassword(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	user, err := h.service.GetUserByEmail(r.Context(), email)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	message, err := h.resetEmail(user.Email)
	if err != nil {
		h.logger.Error("build recovery email", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if err := h.queue.EnqueueSendEmail(r.Context(), jobs.SendEmailPayload{
		To:      user.Email,
		Subject: message.Subject,
		Body:    message.HTML,
	}); err != nil {
		h.logger.Error("enqueue recovery email", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, messageResponse{Message: "Password recovery email sent"})
}

// resetEmail issues a fresh reset token for the account and renders the
// recovery message around it.
func (h *Handler) resetEmail(email string) (mail.Email, error) {
	token, err := h.service.GenerateResetToken(email)
	if err != nil {
		return mail.Email{}, err
	}
	return mail.RenderResetPassword(mail.ResetPasswordData{
		ProjectName: h.cfg.ProjectName,
		Username:    email,
		ValidHours:  int(h.service.ResetTokenTTL().Hours()),
		Link:        h.cfg.FrontendHost + "/reset-password?token=" + token,
	})
}

// recoverPasswordHTMLContent lets a superuser preview the recovery email
// for an account without sending it.
func (h *Handler) recoverPasswordHTMLContent(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	user, err := h.service.GetUserByEmail(r.Context(), email)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	message, err := h.resetEmail(user.Email)
	if err != nil {
		h.logger.Error("build recovery email preview", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Subject", message.Subject)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(message.HTML))
}

type newPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=40"`
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req newPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.ValidationProblem(w, ValidationFields(err))
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Token", "Invalid token")
			return
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, messageResponse{Message: "Password updated successfully"})
}

// ValidationFields flattens validator errors into a field/message map.
func ValidationFields(err error) map[string]string {
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return fields
}
