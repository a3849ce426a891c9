package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/atelier-hq/atelier/internal/auth"
	"github.com/atelier-hq/atelier/internal/mail"
	"github.com/atelier-hq/atelier/internal/platform/httpx"
	"github.com/atelier-hq/atelier/internal/shared"
	"github.com/atelier-hq/atelier/jobs"
)

// HandlerConfig carries presentation settings for account emails.
type HandlerConfig struct {
	ProjectName   string
	FrontendHost  string
	EmailsEnabled bool
}

// Handler wires HTTP endpoints for account management.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	mw        auth.Middleware
	queue     auth.MailQueue
	cfg       HandlerConfig
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw auth.Middleware, queue auth.MailQueue, cfg HandlerConfig) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		mw:        mw,
		queue:     queue,
		cfg:       cfg,
		validator: validator.New(),
	}
}

// MountRoutes registers user routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/signup", h.register)

	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequireSuperuser)
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Patch("/{id}", h.adminUpdate)
		r.Delete("/{id}", h.adminDelete)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequireUser)
		r.Get("/me", h.readMe)
		r.Patch("/me", h.updateMe)
		r.Delete("/me", h.deleteMe)
		r.Patch("/me/password", h.updatePasswordMe)
		r.Get("/{id}", h.readByID)
	})
}

// MountPrivateRoutes registers the local-environment-only endpoints.
func (h *Handler) MountPrivateRoutes(r chi.Router) {
	r.Post("/users", h.create)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePageQuery(r)
	users, total, err := h.service.List(r.Context(), page.Skip, page.Limit)
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	resp := UsersResponse{Data: make([]UserResponse, 0, len(users)), Count: total}
	for i := range users {
		resp.Data = append(resp.Data, NewUserResponse(&users[i]))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.ValidationProblem(w, auth.ValidationFields(err))
		return
	}

	user, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if h.cfg.EmailsEnabled {
		h.sendNewAccountEmail(r, user.Email)
	}
	httpx.JSON(w, http.StatusCreated, NewUserResponse(user))
}

// sendNewAccountEmail enqueues the welcome email; failures are logged and
// never affect the response.
func (h *Handler) sendNewAccountEmail(r *http.Request, email string) {
	message, err := mail.RenderNewAccount(mail.NewAccountData{
		ProjectName: h.cfg.ProjectName,
		Username:    email,
		Link:        h.cfg.FrontendHost,
	})
	if err != nil {
		h.logger.Error("render new account email", slog.Any("error", err))
		return
	}
	err = h.queue.EnqueueSendEmail(r.Context(), jobs.SendEmailPayload{
		To:      email,
		Subject: message.Subject,
		Body:    message.HTML,
	})
	if err != nil {
		h.logger.Error("enqueue new account email", slog.Any("error", err))
	}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.ValidationProblem(w, auth.ValidationFields(err))
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, NewUserResponse(user))
}

func (h *Handler) readMe(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	httpx.JSON(w, http.StatusOK, UserResponse{
		ID:          actor.ID.String(),
		Email:       actor.Email,
		FullName:    actor.FullName,
		IsActive:    actor.IsActive,
		IsSuperuser: actor.IsSuperuser,
	})
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	var req UpdateMeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.ValidationProblem(w, auth.ValidationFields(err))
		return
	}

	user, err := h.service.UpdateMe(r.Context(), auth.UserFromContext(r.Context()), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewUserResponse(user))
}

func (h *Handler) updatePasswordMe(w http.ResponseWriter, r *http.Request) {
	var req UpdatePasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.ValidationProblem(w, auth.ValidationFields(err))
		return
	}

	err := h.service.UpdatePassword(r.Context(), auth.UserFromContext(r.Context()), req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, ErrIncorrectPassword):
		httpx.Problem(w, http.StatusBadRequest, "Incorrect Password", "Incorrect password")
	case errors.Is(err, ErrSamePassword):
		httpx.Problem(w, http.StatusBadRequest, "Same Password", "New password cannot be the same as the current one")
	case err != nil:
		httpx.RespondError(w, err)
	default:
		httpx.JSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
	}
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMe(r.Context(), auth.UserFromContext(r.Context())); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Invalid ID", "user id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) readByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	user, err := h.service.Get(r.Context(), auth.UserFromContext(r.Context()), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewUserResponse(user))
}

func (h *Handler) adminUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req AdminUpdateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.ValidationProblem(w, auth.ValidationFields(err))
		return
	}

	user, err := h.service.AdminUpdate(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewUserResponse(user))
}

func (h *Handler) adminDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.AdminDelete(r.Context(), auth.UserFromContext(r.Context()), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
