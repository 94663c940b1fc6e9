package identity

import (
	"github.com/gofiber/fiber/v2"
)

// AuthController exposes the register and login operations over HTTP. It is
// transport glue only; every outcome it maps to a status code is produced
// by the Authenticator.
type AuthController struct {
	auth   *Authenticator
	logger Logger
}

func NewAuthController(auth *Authenticator) *AuthController {
	return &AuthController{
		auth:   auth,
		logger: defLogger{},
	}
}

func (c *AuthController) WithLogger(logger Logger) *AuthController {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// RegisterRoutes mounts the auth endpoints on the given router.
func (c *AuthController) RegisterRoutes(app fiber.Router) {
	app.Post("/auth/register", c.RegisterPost)
	app.Post("/auth/login", c.LoginPost)
}

// RegisterPost handles POST /auth/register: 201 on success, 400 with an
// errors list for validation and business failures.
func (c *AuthController) RegisterPost(ctx *fiber.Ctx) error {
	var input RegisterInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": []string{"Invalid request body"},
		})
	}

	result, err := c.auth.Register(ctx.UserContext(), input)
	if err != nil {
		if verr, ok := AsValidationError(err); ok {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": verr.Messages,
			})
		}
		c.logger.Error("Register handler error: %v", err)
		return fiber.ErrInternalServerError
	}

	if !result.Succeeded {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": result.Errors,
		})
	}

	return ctx.SendStatus(fiber.StatusCreated)
}

// LoginPost handles POST /auth/login: 200 with the token payload, 401 for
// bad credentials, 400 for malformed input.
func (c *AuthController) LoginPost(ctx *fiber.Ctx) error {
	var input LoginInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": []string{"Invalid request body"},
		})
	}

	result, err := c.auth.Login(ctx.UserContext(), input)
	if err != nil {
		if verr, ok := AsValidationError(err); ok {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": verr.Messages,
			})
		}
		c.logger.Error("Login handler error: %v", err)
		return fiber.ErrInternalServerError
	}

	if result == nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}

	return ctx.JSON(result)
}
