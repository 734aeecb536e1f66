package controller

import (
	"shopping-assistant-be/internal/pkg/serverutils"
	"shopping-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICartController interface {
	RegisterRoutes(r fiber.Router)
	GetCart(ctx *fiber.Ctx) error
	RemoveItem(ctx *fiber.Ctx) error
	ClearCart(ctx *fiber.Ctx) error
}

type cartController struct {
	cartService service.ICartService
}

func NewCartController(cartService service.ICartService) ICartController {
	return &cartController{cartService: cartService}
}

func (c *cartController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cart/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetCart)
	h.Delete("item/:id", c.RemoveItem)
	h.Delete("", c.ClearCart)
}

func (c *cartController) GetCart(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.cartService.GetCart(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get cart", res))
}

func (c *cartController) RemoveItem(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	itemId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid cart item id")
	}

	if err := c.cartService.RemoveItem(ctx.Context(), userId, itemId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success remove cart item", nil))
}

func (c *cartController) ClearCart(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	if err := c.cartService.ClearCart(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear cart", nil))
}
