// Package utils serves the operational endpoints: a liveness probe and
// a superuser-only test email trigger.
package utils

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atelier-hq/atelier/internal/auth"
	"github.com/atelier-hq/atelier/internal/mail"
	"github.com/atelier-hq/atelier/internal/platform/httpx"
	"github.com/atelier-hq/atelier/jobs"
)

type Handler struct {
	logger      *slog.Logger
	queue       auth.MailQueue
	mw          auth.Middleware
	projectName string
	validator   *validator.Validate
}

// NewHandler builds a utility handler.
func NewHandler(logger *slog.Logger, queue auth.MailQueue, mw auth.Middleware, projectName string) *Handler {
	return &Handler{
		logger:      logger,
		queue:       queue,
		mw:          mw,
		projectName: projectName,
		validator:   validator.New(),
	}
}

// MountRoutes registers the utility routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/health-check", h.healthCheck)
	r.With(h.mw.RequireSuperuser).Post("/test-email", h.testEmail)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Ok"})
}

type testEmailRequest struct {
	EmailTo string `json:"email_to" validate:"required,email"`
}

func (h *Handler) testEmail(w http.ResponseWriter, r *http.Request) {
	var req testEmailRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.ValidationProblem(w, auth.ValidationFields(err))
		return
	}

	message, err := mail.RenderTestEmail(mail.TestEmailData{ProjectName: h.projectName, Email: req.EmailTo})
	if err != nil {
		h.logger.Error("render test email", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Server Error", "could not render email")
		return
	}
	err = h.queue.EnqueueSendEmail(r.Context(), jobs.SendEmailPayload{
		To:      req.EmailTo,
		Subject: message.Subject,
		Body:    message.HTML,
	})
	if err != nil {
		h.logger.Error("enqueue test email", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Server Error", "could not enqueue email")
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]string{"message": "Test email sent"})
}
