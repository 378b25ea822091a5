package handlers

import (
	"errors"

	apperrors "catalogo/internal/errors"

	"github.com/gofiber/fiber/v2"
)

// Outcome markers carried in the "estado" field of every response.
const (
	estadoOK   = "satisfactorio"
	estadoFail = "falló"
)

const (
	msgPing            = "Conectado exitosamente!"
	msgInvalidPayload  = "Carga inválida."
	msgDuplicateName   = "Lo siento, ese nombre ya existe."
	msgProductNotFound = "El producto no existe"
	msgInternal        = "Algo salió mal."
)

func failure(mensaje string) fiber.Map {
	return fiber.Map{
		"mensaje": mensaje,
		"estado":  estadoFail,
	}
}

// errorStatus maps a service error to the status code and message shown to clients.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidPayload):
		return fiber.StatusBadRequest, msgInvalidPayload
	case errors.Is(err, apperrors.ErrDuplicateName):
		return fiber.StatusBadRequest, msgDuplicateName
	case errors.Is(err, apperrors.ErrProductNotFound):
		return fiber.StatusNotFound, msgProductNotFound
	default:
		return fiber.StatusInternalServerError, msgInternal
	}
}
