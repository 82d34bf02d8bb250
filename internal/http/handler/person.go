package handler

import (
	"github.com/gofiber/fiber/v2"

	"custodia/internal/service"
)

type createPersonRequest struct {
	CPF string `json:"cpf"`
}

type createPersonResponse struct {
	Mensagem string `json:"mensagem"`
	CPF      string `json:"cpf"`
}

type personResponse struct {
	CPF string `json:"cpf"`
}

// CreatePerson handles POST /api/usuarios.
//
// @Summary Register a person
// @Accept json
// @Produce json
// @Param body body createPersonRequest true "person to register"
// @Success 201 {object} createPersonResponse
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/usuarios [post]
func CreatePerson(svc service.PersonService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createPersonRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if req.CPF == "" {
			return writeError(c, fiber.StatusBadRequest, "CPF_REQUIRED", "cpf is required")
		}

		p, err := svc.Create(c.UserContext(), req.CPF)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(createPersonResponse{
			Mensagem: "Usuário criado",
			CPF:      p.CPF,
		})
	}
}

// GetPerson handles GET /api/usuarios/:cpf.
//
// @Summary Look up a person by CPF
// @Produce json
// @Param cpf path string true "CPF"
// @Success 200 {object} personResponse
// @Failure 404 {object} errorPayload
// @Router /api/usuarios/{cpf} [get]
func GetPerson(svc service.PersonService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.Get(c.UserContext(), c.Params("cpf"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(personResponse{CPF: p.CPF})
	}
}
