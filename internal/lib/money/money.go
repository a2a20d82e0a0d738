// Package money содержит тип Amount для денежных сумм с точностью до копеек.
//
// Amount хранит значение в decimal.Decimal, всегда округляется до двух знаков
// и сериализуется в JSON строкой с ровно двумя знаками после точки ("2.50").
package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidFormat возвращается, если строка не является корректной ценой.
var ErrInvalidFormat = errors.New("invalid price format")

// pricePattern допускает неотрицательные суммы до 99999999.99: не более восьми цифр
// до точки и двух после, как в колонке NUMERIC(10,2).
var pricePattern = regexp.MustCompile(`^\d{1,8}(\.\d{0,2})?$`)

// Amount — неотрицательная денежная сумма с двумя знаками после точки.
type Amount struct {
	decimal.Decimal
}

var Zero = Amount{Decimal: decimal.Zero}

// New округляет d до двух знаков и оборачивает в Amount.
func New(d decimal.Decimal) Amount {
	return Amount{Decimal: d.Round(2)}
}

// IsValid сообщает, подходит ли строка под формат цены.
func IsValid(s string) bool {
	return pricePattern.MatchString(s)
}

// Parse разбирает строку вида "2.5" или "2.50" в Amount.
func Parse(s string) (Amount, error) {
	const op = "money.Parse"
	if !IsValid(s) {
		return Zero, fmt.Errorf("%s: %q: %w", op, s, ErrInvalidFormat)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("%s: %w", op, err)
	}
	return New(d), nil
}

// MustParse как Parse, но паникует на ошибке. Только для тестов и констант.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Times возвращает сумму, умноженную на количество, округлённую до двух знаков.
func (a Amount) Times(quantity int) Amount {
	return New(a.Decimal.Mul(decimal.NewFromInt(int64(quantity))))
}

// String всегда печатает два знака после точки.
func (a Amount) String() string {
	return a.Decimal.StringFixed(2)
}

// MarshalJSON сериализует сумму строкой: "5.00".
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON принимает как строку, так и число, в формате цены.
// Ошибка формата оборачивает ErrInvalidFormat.
func (a *Amount) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
