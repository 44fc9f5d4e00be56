package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"easyshop/internal/log"
	"easyshop/internal/validate"
)

const genericMessage = "Something went wrong. Please try again."

type errorBody struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
}

// ErrorHandler renders every error as JSON. 5xx bodies always carry the
// generic message so driver and panic text stay in the logs.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := genericMessage

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			msg = fe.Message
		}
	} else {
		log.Error(c, "server.error", err, nil)
	}

	return c.Status(code).JSON(errorBody{
		Status:    code,
		Error:     utils.StatusMessage(code),
		Message:   msg,
		Path:      c.Path(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// storeFailure logs err under action and maps it to a 500.
func storeFailure(c *fiber.Ctx, action string, err error) error {
	log.Error(c, action, err, nil)
	return fiber.ErrInternalServerError
}

func pathID(c *fiber.Ctx) (int, error) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "id", "value": c.Params("id")})
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		log.Security(c, "validation.fail", map[string]any{"field": "body"})
		return fiber.NewError(fiber.StatusBadRequest, "Malformed request body")
	}
	return nil
}
