package response

import "github.com/gofiber/fiber/v3"

const (
	MessageOK                  = "OK"
	MessageError               = "Error"
	MessageBadRequest          = "Bad request"
	MessageUnauthorized        = "Unauthorized"
	MessageForbidden           = "Forbidden"
	MessageNotFound            = "Not found"
	MessageConflict            = "Conflict"
	MessageUnprocessableEntity = "Unprocessable entity"
	MessageInternalServerError = "Internal server error"
)

type SemanticResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func Success(c fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(SemanticResponse{Status: status, Message: message, Data: data})
}

func Error(c fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(SemanticResponse{Status: status, Message: message, Data: data})
}
