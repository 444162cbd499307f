package validator

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("city_name", func(fl validator.FieldLevel) bool {
		return IsCityNameValid(fl.Field().String())
	})
	_ = validate.RegisterValidation("country_name", func(fl validator.FieldLevel) bool {
		return IsCountryNameValid(fl.Field().String())
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

// IsCityNameValid - название не пустое, не начинается с цифры и состоит из допустимых символов
func IsCityNameValid(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range []rune(name) {
		if i == 0 && unicode.IsDigit(r) {
			return false
		}
		if !isAllowedRune(r) {
			return false
		}
	}
	return true
}

// IsCountryNameValid - название не пустое, без цифр и из допустимых символов
func IsCountryNameValid(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if unicode.IsDigit(r) || !isAllowedRune(r) {
			return false
		}
	}
	return true
}

func isAllowedRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case ' ', '-', '\'', '’', '.':
		return true
	}
	return false
}
