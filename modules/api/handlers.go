package api

import (
	"encoding/json"
	"strings"

	"github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/domain/view"
	"github.com/example/taskboard/modules/auth"
	"github.com/example/taskboard/modules/board"
	commentmod "github.com/example/taskboard/modules/comment"
	"github.com/example/taskboard/modules/filterstore"
	"github.com/example/taskboard/modules/tasks"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	authContainer    mono.ServiceContainer
	taskContainer    mono.ServiceContainer
	commentContainer mono.ServiceContainer
	filterContainer  mono.ServiceContainer
	boardContainer   mono.ServiceContainer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authC, taskC, commentC, filterC, boardC mono.ServiceContainer) *Handlers {
	return &Handlers{
		authContainer:    authC,
		taskContainer:    taskC,
		commentContainer: commentC,
		filterContainer:  filterC,
		boardContainer:   boardC,
	}
}

// call invokes a request-reply service with JSON codecs.
func call[TReq any, TResp any](c *fiber.Ctx, container mono.ServiceContainer, service string, req TReq, resp *TResp) error {
	return helper.CallRequestReplyService(
		c.UserContext(),
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	)
}

// domainError maps a domain error kind onto an HTTP status. Errors that
// crossed the service bus are matched by their kind prefix.
func domainError(c *fiber.Ctx, err error) error {
	kind := task.Kind(err)
	if kind == "" {
		kind = task.KindFromMessage(err.Error())
	}

	status := fiber.StatusInternalServerError
	switch kind {
	case task.KindNotFound:
		status = fiber.StatusNotFound
	case task.KindIllegalTransition:
		status = fiber.StatusUnprocessableEntity
	case task.KindTaskImmutable:
		status = fiber.StatusLocked
	case task.KindNotPermitted:
		status = fiber.StatusForbidden
	case task.KindConflict:
		status = fiber.StatusConflict
	case task.KindValidation:
		status = fiber.StatusBadRequest
	default:
		kind = "server_error"
	}

	return c.Status(status).JSON(ErrorResponse{
		Error:   kind,
		Message: err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// --- auth ---

// Register handles actor registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	var resp auth.RegisterResponse
	if err := call(c, h.authContainer, "register", &req, &resp); err != nil {
		return h.authError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login handles actor login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	var resp auth.LoginResponse
	if err := call(c, h.authContainer, "login", &req, &resp); err != nil {
		return h.authError(c, err)
	}
	return c.JSON(resp)
}

// Refresh exchanges a refresh token for a new token pair.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req auth.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return badRequest(c, "Refresh token is required")
	}

	var resp auth.RefreshResponse
	if err := call(c, h.authContainer, "refresh-token", &req, &resp); err != nil {
		return h.authError(c, err)
	}
	return c.JSON(resp)
}

// Profile returns the authenticated actor.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	claims := claimsFromContext(c)
	req := auth.GetActorRequest{ActorID: claims.ActorID}
	var resp auth.GetActorResponse
	if err := call(c, h.authContainer, "get-actor", &req, &resp); err != nil {
		return h.authError(c, err)
	}
	return c.JSON(resp)
}

// authError maps auth service failures onto HTTP statuses.
func (h *Handlers) authError(c *fiber.Ctx, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "already exists"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "An account with this email already exists",
		})
	case strings.Contains(msg, "invalid email or password"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid email or password",
		})
	case strings.Contains(msg, "not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Actor not found",
		})
	case strings.Contains(msg, "invalid email"),
		strings.Contains(msg, "password must"),
		strings.Contains(msg, "unknown role"),
		strings.Contains(msg, "token"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: msg,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "server_error",
			Message: "An unexpected error occurred",
		})
	}
}

// --- tasks ---

// CreateTask creates a task in a team.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var req tasks.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.ActorID = claimsFromContext(c).ActorID

	var resp tasks.TaskResponse
	if err := call(c, h.taskContainer, "task.create", &req, &resp); err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetTask returns a single task.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	req := tasks.GetTaskRequest{
		ActorID: claimsFromContext(c).ActorID,
		ID:      c.Params("id"),
	}
	var resp tasks.TaskResponse
	if err := call(c, h.taskContainer, "task.get", &req, &resp); err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}

// ListTasks returns the actor's visible tasks for a scope.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	req := tasks.ListTasksRequest{
		ActorID: claimsFromContext(c).ActorID,
		Scope:   view.Scope(c.Query("scope")),
	}
	var resp tasks.ListTasksResponse
	if err := call(c, h.taskContainer, "task.list", &req, &resp); err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}

// UpdateTask edits a task's fields.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	var req tasks.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.ActorID = claimsFromContext(c).ActorID
	req.ID = c.Params("id")

	var resp tasks.TaskResponse
	if err := call(c, h.taskContainer, "task.update", &req, &resp); err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}

// TransitionTask requests a status change.
func (h *Handlers) TransitionTask(c *fiber.Ctx) error {
	var req tasks.TransitionTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.ActorID = claimsFromContext(c).ActorID
	req.ID = c.Params("id")
	if req.Target == "" {
		return badRequest(c, "Target status is required")
	}

	var resp tasks.TaskResponse
	if err := call(c, h.taskContainer, "task.transition", &req, &resp); err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}

// TakeTask self-assigns an unassigned task.
func (h *Handlers) TakeTask(c *fiber.Ctx) error {
	req := tasks.TakeTaskRequest{
		ActorID: claimsFromContext(c).ActorID,
		ID:      c.Params("id"),
	}
	var resp tasks.TaskResponse
	if err := call(c, h.taskContainer, "task.take", &req, &resp); err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}

// ReleaseTask returns an assigned task to the pool.
func (h *Handlers) ReleaseTask(c *fiber.Ctx) error {
	req := tasks.ReleaseTaskRequest{
		ActorID: claimsFromContext(c).ActorID,
		ID:      c.Params("id"),
	}
	var resp tasks.TaskResponse
	if err := call(c, h.taskContainer, "task.release", &req, &resp); err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}

// AssignTask sets or clears a task's responsible.
func (h *Handlers) AssignTask(c *fiber.Ctx) error {
	var req tasks.AssignTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.ActorID = claimsFromContext(c).ActorID
	req.ID = c.Params("id")

	var resp tasks.TaskResponse
	if err := call(c, h.taskContainer, "task.assign", &req, &resp); err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}

// DeleteTask removes a task. Admin only.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	req := tasks.DeleteTaskRequest{
		ActorID: claimsFromContext(c).ActorID,
		ID:      c.Params("id"),
	}
	var resp tasks.DeleteTaskResponse
	if err := call(c, h.taskContainer, "task.delete", &req, &resp); err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}

// --- comments ---

// ListComments returns a task's comment thread.
func (h *Handlers) ListComments(c *fiber.Ctx) error {
	req := commentmod.ListCommentsRequest{
		ActorID: claimsFromContext(c).ActorID,
		TaskID:  c.Params("id"),
	}
	var resp commentmod.ListCommentsResponse
	if err := call(c, h.commentContainer, "comment.list", &req, &resp); err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}

// AddComment appends a comment to a task.
func (h *Handlers) AddComment(c *fiber.Ctx) error {
	var req commentmod.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.ActorID = claimsFromContext(c).ActorID
	req.TaskID = c.Params("id")

	var resp commentmod.CommentResponse
	if err := call(c, h.commentContainer, "comment.add", &req, &resp); err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// EditComment rewrites the author's own comment.
func (h *Handlers) EditComment(c *fiber.Ctx) error {
	var req commentmod.EditCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.ActorID = claimsFromContext(c).ActorID
	req.ID = c.Params("id")

	var resp commentmod.CommentResponse
	if err := call(c, h.commentContainer, "comment.edit", &req, &resp); err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}

// DeleteComment soft-deletes the author's own comment.
func (h *Handlers) DeleteComment(c *fiber.Ctx) error {
	req := commentmod.DeleteCommentRequest{
		ActorID: claimsFromContext(c).ActorID,
		ID:      c.Params("id"),
	}
	var resp commentmod.DeleteCommentResponse
	if err := call(c, h.commentContainer, "comment.delete", &req, &resp); err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}

// --- filters ---

// GetFilters returns the actor's saved filter configuration.
func (h *Handlers) GetFilters(c *fiber.Ctx) error {
	req := filterstore.GetFiltersRequest{ActorID: claimsFromContext(c).ActorID}
	var resp filterstore.GetFiltersResponse
	if err := call(c, h.filterContainer, "filters.get", &req, &resp); err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}

// SaveFilters persists the actor's filter configuration.
func (h *Handlers) SaveFilters(c *fiber.Ctx) error {
	var req filterstore.SaveFiltersRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.ActorID = claimsFromContext(c).ActorID

	var resp filterstore.SaveFiltersResponse
	if err := call(c, h.filterContainer, "filters.save", &req, &resp); err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}

// ResetFilters drops the actor's saved filter configuration.
func (h *Handlers) ResetFilters(c *fiber.Ctx) error {
	req := filterstore.ResetFiltersRequest{ActorID: claimsFromContext(c).ActorID}
	var resp filterstore.ResetFiltersResponse
	if err := call(c, h.filterContainer, "filters.reset", &req, &resp); err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}

// --- board ---

// Board renders the actor's grouped board view.
func (h *Handlers) Board(c *fiber.Ctx) error {
	req := board.BoardRequest{
		ActorID:   claimsFromContext(c).ActorID,
		SortBy:    view.SortKey(c.Query("sort_by")),
		Direction: view.Direction(c.Query("direction")),
	}
	var resp board.BoardResponse
	if err := call(c, h.boardContainer, "board.view", &req, &resp); err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}
