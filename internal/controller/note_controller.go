package controller

import (
	"errors"

	"task-notes-be/internal/dto"
	"task-notes-be/internal/pkg/serverutils"
	"task-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	ListByTask(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	notes := r.Group("/notes")
	notes.Use(serverutils.JwtMiddleware)
	notes.Get("", c.List)
	notes.Post("", serverutils.RequireScope("create:notes"), c.Create)
	notes.Put(":id", serverutils.RequireScope("update:notes"), c.Update)
	notes.Delete(":id", serverutils.RequireScope("delete:notes"), c.Delete)

	tasks := r.Group("/tasks")
	tasks.Use(serverutils.JwtMiddleware)
	tasks.Get(":task_id/notes", c.ListByTask)
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	res, err := c.noteService.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) ListByTask(ctx *fiber.Ctx) error {
	taskId, err := service.ParseReference(ctx.Params("task_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid task id"))
	}

	res, err := c.noteService.ListByTask(ctx.Context(), taskId)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse("Task not found"))
		case errors.Is(err, service.ErrTaskUnavailable):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse("Task service unavailable"))
		}
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	author, _ := ctx.Locals("sub").(string)

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	req.Normalize()

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Missing title or content"))
	}

	idempotencyKey := ctx.Get("Idempotency-Key")

	res, err := c.noteService.Create(ctx.Context(), author, &req, idempotencyKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReference):
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid task id"))
		case errors.Is(err, service.ErrTaskNotFound):
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Task not found"))
		case errors.Is(err, service.ErrTaskUnavailable):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse("Task service unavailable"))
		}
		return err
	}

	status := fiber.StatusCreated
	if res.Replayed {
		status = fiber.StatusOK
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return ctx.Status(status).Send(res.Body)
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	id, err := service.ParseReference(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid id"))
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	req.Normalize()

	res, err := c.noteService.Update(ctx.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse("Note not found"))
		}
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	id, err := service.ParseReference(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid id"))
	}

	if err := c.noteService.Delete(ctx.Context(), id); err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse("Note not found"))
		}
		return err
	}
	return ctx.JSON(serverutils.MessageResponse("Note deleted"))
}
