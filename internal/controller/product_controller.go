package controller

import (
	"strconv"

	"shopping-assistant-be/internal/dto"
	"shopping-assistant-be/internal/pkg/serverutils"
	"shopping-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProductController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Reindex(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type productController struct {
	productService service.IProductService
}

func NewProductController(productService service.IProductService) IProductController {
	return &productController{productService: productService}
}

func (c *productController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/product/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("search", c.Search)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Post(":id/reindex", c.Reindex)
}

func (c *productController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.productService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create product", res))
}

func (c *productController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid product id")
	}

	res, err := c.productService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show product", res))
}

func (c *productController) List(ctx *fiber.Ctx) error {
	category := ctx.Query("category", "")
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.Query("page_size", "20"))

	res, err := c.productService.List(ctx.Context(), category, page, pageSize)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list products", res))
}

func (c *productController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid product id")
	}

	if err := c.productService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete product", nil))
}

func (c *productController) Search(ctx *fiber.Ctx) error {
	q := ctx.Query("q", "")
	if q == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Query parameter 'q' is required")
	}

	res, err := c.productService.Search(ctx.Context(), q)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search products", res))
}

func (c *productController) Reindex(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid product id")
	}

	if err := c.productService.Reindex(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success queue product reindex", nil))
}
