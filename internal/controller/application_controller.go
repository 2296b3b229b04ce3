package controller

import (
	"volunteer-matching-be/internal/dto"
	"volunteer-matching-be/internal/pkg/serverutils"
	"volunteer-matching-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IApplicationController interface {
	RegisterRoutes(r fiber.Router)
	Apply(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	GetMine(ctx *fiber.Ctx) error
}

type applicationController struct {
	applicationService service.IApplicationService
}

func NewApplicationController(applicationService service.IApplicationService) IApplicationController {
	return &applicationController{
		applicationService: applicationService,
	}
}

func (c *applicationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/application/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Apply)
	h.Get("", c.GetMine)
	h.Delete(":id", c.Cancel)
}

func (c *applicationController) Apply(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateApplicationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.applicationService.Apply(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success apply to event", res))
}

func (c *applicationController) Cancel(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid application id")
	}

	if err := c.applicationService.Cancel(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success cancel application", nil))
}

func (c *applicationController) GetMine(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.applicationService.GetMine(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get applications", res))
}
