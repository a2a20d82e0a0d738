// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков: тело ошибки всегда имеет вид
// {"message": "..."}.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/sweet-shop/internal/lib/money"
	"github.com/magabrotheeeer/sweet-shop/internal/models"
)

// Общие тексты ошибок.
const (
	MsgInternal          = "Internal server error"
	MsgInvalidBody       = "Invalid request body"
	MsgSweetNotFound     = "Sweet not found"
	MsgInsufficientStock = "Insufficient stock"
	MsgOutOfRange        = "Value is out of range"
)

// ErrorResponse — тело ответа с ошибкой.
type ErrorResponse struct {
	Message string `json:"message" example:"Sweet not found"`
}

// MessageResponse используется для ответов без данных.
type MessageResponse struct {
	Message string `json:"message" example:"Purchase successful"`
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Message: msg}
}

// ValidationError формирует ErrorResponse по первому нарушенному правилу.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	if len(errs) == 0 {
		return Error(MsgInvalidBody)
	}
	return Error(fieldMessage(errs[0]))
}

// DecodeError формирует ErrorResponse для ошибки разбора JSON-тела.
// Несовпадение типа поля называет поле, неверная цена даёт текст правила price.
func DecodeError(err error) ErrorResponse {
	if errors.Is(err, money.ErrInvalidFormat) {
		return Error("Invalid price format")
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := fieldTitle(typeErr.Field)
		switch typeErr.Type.Kind() {
		case reflect.Int, reflect.Int32, reflect.Int64:
			return Error(fmt.Sprintf("%s must be an integer", field))
		case reflect.String:
			return Error(fmt.Sprintf("%s must be a string", field))
		default:
			return Error(fmt.Sprintf("%s has an invalid type", field))
		}
	}
	return Error(MsgInvalidBody)
}

func fieldMessage(err validator.FieldError) string {
	field := fieldTitle(err.Field())

	switch err.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, err.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, err.Param())
	case "gte":
		if err.Param() == "0" {
			return fmt.Sprintf("%s must be non-negative", field)
		}
		return fmt.Sprintf("%s must be at least %s", field, err.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, err.Param())
	case "price":
		return "Invalid price format"
	case "category":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(models.Categories, ", "))
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid id", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// fieldTitle превращает "minPrice" в "MinPrice" для текста ошибки.
func fieldTitle(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
