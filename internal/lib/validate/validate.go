// Package validate собирает общий экземпляр validator.Validate для HTTP-обработчиков.
//
// Имена полей в ошибках берутся из json-тегов, дополнительно зарегистрировано правило
// "price" — строка с неотрицательной суммой и не более чем двумя знаками после точки,
// и "category" — одна из категорий каталога.
package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/sweet-shop/internal/lib/money"
	"github.com/magabrotheeeer/sweet-shop/internal/models"
)

// New возвращает валидатор с зарегистрированными правилами магазина.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	if err := v.RegisterValidation("price", isPrice); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("category", isCategory); err != nil {
		panic(err)
	}
	return v
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

func isPrice(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return money.IsValid(field.String())
}

func isCategory(fl validator.FieldLevel) bool {
	field := fl.Field()
	return field.Kind() == reflect.String && models.IsCategory(field.String())
}
