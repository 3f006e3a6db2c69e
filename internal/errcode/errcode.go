package errcode

import "net/http"

// Code is a typed error code enum for consistent error identification
// across the engine, the storage layer, and the backend client. The UI keys
// its behavior (toast, redirect, silent no-op) off these codes.
type Code string

const (
	// ─── Configuration ─────────────────────────────────────────────────
	ErrConfiguration Code = "CONFIGURATION_ERROR"

	// ─── Encoding / storage ────────────────────────────────────────────
	ErrDecode Code = "DECODE_ERROR"

	// ─── Session token ─────────────────────────────────────────────────
	ErrTokenRequired Code = "TOKEN_REQUIRED"
	ErrTokenInvalid  Code = "TOKEN_INVALID"
	ErrTokenMismatch Code = "TOKEN_MISMATCH"

	// ─── Exam flow ─────────────────────────────────────────────────────
	ErrSessionActive        Code = "SESSION_ALREADY_ACTIVE"
	ErrSessionNotActive     Code = "SESSION_NOT_ACTIVE"
	ErrNoQuestions          Code = "NO_QUESTIONS"
	ErrNavigationNotAllowed Code = "NAVIGATION_NOT_ALLOWED"
	ErrReviewUnavailable    Code = "REVIEW_UNAVAILABLE"

	// ─── Backend API ───────────────────────────────────────────────────
	ErrValidation   Code = "VALIDATION_ERROR"
	ErrUnauthorized Code = "UNAUTHORIZED"
	ErrNotFound     Code = "NOT_FOUND"
	ErrConflict     Code = "CONFLICT"
	ErrInvalidInput Code = "INVALID_INPUT"
	ErrServer       Code = "SERVER_ERROR"
	ErrNetwork      Code = "NETWORK_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code Code) string {
	switch code {
	// ─── Configuration ─────────────────────────────────────────────────
	case ErrConfiguration:
		return "Error de configuración. Contacte al administrador."

	// ─── Encoding / storage ────────────────────────────────────────────
	case ErrDecode:
		return "Los datos almacenados no son válidos."

	// ─── Session token ─────────────────────────────────────────────────
	case ErrTokenRequired:
		return "Se requiere un token de sesión."
	case ErrTokenInvalid:
		return "El token de sesión no es válido."
	case ErrTokenMismatch:
		return "El token no corresponde a este simulador."

	// ─── Exam flow ─────────────────────────────────────────────────────
	case ErrSessionActive:
		return "Ya hay un examen en curso."
	case ErrSessionNotActive:
		return "No hay un examen en curso."
	case ErrNoQuestions:
		return "Este simulador no tiene preguntas."
	case ErrNavigationNotAllowed:
		return "No puede regresar a preguntas anteriores en este simulador."
	case ErrReviewUnavailable:
		return "La revisión no está disponible para este intento."

	// ─── Backend API ───────────────────────────────────────────────────
	case ErrValidation:
		return "Validación fallida. Revise los datos enviados."
	case ErrUnauthorized:
		return "No autorizado. Inicie sesión nuevamente."
	case ErrNotFound:
		return "El recurso solicitado no existe."
	case ErrConflict:
		return "El recurso ya existe."
	case ErrInvalidInput:
		return "Los datos enviados no son válidos."
	case ErrServer:
		return "Error interno del servidor. Intente más tarde."
	case ErrNetwork:
		return "Error de red. Verifique su conexión."
	default:
		return "Ocurrió un error inesperado."
	}
}

// FromStatus maps an HTTP status code from the backend API to an error code.
// Unrecognized statuses fall back to the generic network code.
func FromStatus(status int) Code {
	switch status {
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnprocessableEntity:
		return ErrInvalidInput
	case http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrNetwork
	}
}
