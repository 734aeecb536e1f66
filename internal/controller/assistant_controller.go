package controller

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"shopping-assistant-be/internal/dto"
	"shopping-assistant-be/internal/pkg/serverutils"
	"shopping-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetAllSessions(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	ResetSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
	imageUploadDir   string
}

func NewAssistantController(assistantService service.IAssistantService, imageUploadDir string) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
		imageUploadDir:   imageUploadDir,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("session", c.CreateSession)
	h.Get("session", c.GetAllSessions)
	h.Get("session/:id/history", c.GetChatHistory)
	h.Post("chat", c.SendChat)
	h.Post("session/reset", c.ResetSession)
	h.Delete("session/:id", c.DeleteSession)
}

func (c *assistantController) CreateSession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.assistantService.CreateSession(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *assistantController) GetAllSessions(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.assistantService.GetAllSessions(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all sessions", res))
}

func (c *assistantController) GetChatHistory(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	sessionId, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := c.assistantService.GetChatHistory(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

// SendChat accepts multipart form data so a turn can carry an image. Fields:
// chat_session_id, chat (optional when an image is present), image (optional).
func (c *assistantController) SendChat(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionId, err := uuid.Parse(ctx.FormValue("chat_session_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid chat_session_id")
	}

	req := dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          ctx.FormValue("chat"),
	}

	if file, err := ctx.FormFile("image"); err == nil && file != nil {
		imagePath, err := c.saveUpload(ctx, file, sessionId)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Failed to store uploaded image")
		}
		req.ImagePath = imagePath
	}

	if req.Chat == "" && req.ImagePath == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Provide a message or an image")
	}

	res, err := c.assistantService.SendChat(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *assistantController) ResetSession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.ResetSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.assistantService.ResetSession(ctx.Context(), userId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success reset session", nil))
}

func (c *assistantController) DeleteSession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}
	req := dto.DeleteSessionRequest{ChatSessionId: sessionId}

	if err := c.assistantService.DeleteSession(ctx.Context(), userId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func (c *assistantController) saveUpload(ctx *fiber.Ctx, file *multipart.FileHeader, sessionId uuid.UUID) (string, error) {
	if err := os.MkdirAll(c.imageUploadDir, 0755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%d%s", sessionId, time.Now().UnixNano(), filepath.Ext(file.Filename))
	dest := filepath.Join(c.imageUploadDir, name)

	if err := ctx.SaveFile(file, dest); err != nil {
		return "", err
	}
	return dest, nil
}
