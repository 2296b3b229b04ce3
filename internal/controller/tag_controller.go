package controller

import (
	"volunteer-matching-be/internal/dto"
	"volunteer-matching-be/internal/pkg/serverutils"
	"volunteer-matching-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITagController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
}

type tagController struct {
	tagService service.ITagService
}

func NewTagController(tagService service.ITagService) ITagController {
	return &tagController{
		tagService: tagService,
	}
}

func (c *tagController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tag/v1")
	h.Get("", c.GetAll)
	h.Post("", serverutils.JwtMiddleware, c.Create)
}

func (c *tagController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateTagRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.tagService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create tag", res))
}

func (c *tagController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.tagService.GetAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get tags", res))
}
