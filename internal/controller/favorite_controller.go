package controller

import (
	"volunteer-matching-be/internal/dto"
	"volunteer-matching-be/internal/pkg/serverutils"
	"volunteer-matching-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFavoriteController interface {
	RegisterRoutes(r fiber.Router)
	Add(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
	GetMine(ctx *fiber.Ctx) error
}

type favoriteController struct {
	favoriteService service.IFavoriteService
}

func NewFavoriteController(favoriteService service.IFavoriteService) IFavoriteController {
	return &favoriteController{
		favoriteService: favoriteService,
	}
}

func (c *favoriteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/favorite/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Add)
	h.Get("", c.GetMine)
	h.Delete(":event_id", c.Remove)
}

func (c *favoriteController) Add(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateFavoriteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.favoriteService.Add(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add favorite", res))
}

func (c *favoriteController) Remove(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	eventIdParam := ctx.Params("event_id")
	eventId, err := uuid.Parse(eventIdParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid event id")
	}

	if err := c.favoriteService.Remove(ctx.Context(), userId, eventId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success remove favorite", nil))
}

func (c *favoriteController) GetMine(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.favoriteService.GetMine(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get favorites", res))
}
