// Package validation — обёртка над go-playground/validator, которая
// собирает все нарушения в один apperr.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"formulator/internal/apperr"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Default возвращает общий валидатор с зарегистрированными правилами.
func Default() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		registerCustomValidations(v)
		instance = v
	})
	return instance
}

// Struct проверяет структуру по тегам validate. Возвращает nil или
// *apperr.ValidationError со всеми сообщениями.
func Struct(s interface{}) *apperr.ValidationError {
	err := Default().Struct(s)
	if err == nil {
		return nil
	}

	out := &apperr.ValidationError{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add("", err.Error())
		return out
	}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func registerCustomValidations(v *validator.Validate) {
	if err := v.RegisterValidation("password", validatePassword); err != nil {
		panic("validation: не удалось зарегистрировать правило password: " + err.Error())
	}
}

// validatePassword: не короче 8 символов, есть строчная, заглавная буква и цифра.
func validatePassword(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	if len([]rune(pw)) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: обязательное поле", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s: минимум %s символов", field, fe.Param())
		}
		return fmt.Sprintf("%s: минимум %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s: максимум %s символов", field, fe.Param())
		}
		return fmt.Sprintf("%s: максимум %s элементов", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s: значение должно быть не меньше %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s: некорректный email", field)
	case "url":
		return fmt.Sprintf("%s: некорректный URL", field)
	case "oneof":
		return fmt.Sprintf("%s: допустимые значения: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "hexcolor":
		return fmt.Sprintf("%s: цвет должен быть в формате #RRGGBB", field)
	case "password":
		return fmt.Sprintf("%s: минимум 8 символов, строчная и заглавная буква и цифра", field)
	default:
		return fmt.Sprintf("%s: не прошло проверку %s", field, fe.Tag())
	}
}
