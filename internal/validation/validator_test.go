package validation

import (
	"strings"
	"testing"

	"formulator/internal/models"
)

type credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

func TestStruct_Passes(t *testing.T) {
	if ve := Struct(&credentials{Email: "a@b.co", Password: "Secret123"}); ve != nil {
		t.Fatalf("ожидался успех: %v", ve)
	}
}

func TestStruct_AggregatesAllViolations(t *testing.T) {
	ve := Struct(&models.ArticleInput{
		Title:   "ab",
		Content: "short",
		Status:  "ARCHIVED",
	})
	if ve == nil {
		t.Fatal("ожидалась ошибка валидации")
	}

	fields := map[string]bool{}
	for _, f := range ve.Fields {
		fields[f.Field] = true
	}
	for _, want := range []string{"title", "content", "status"} {
		if !fields[want] {
			t.Errorf("нет сообщения для поля %q: %v", want, ve.Messages())
		}
	}
}

func TestPasswordRule(t *testing.T) {
	cases := map[string]bool{
		"Secret123": true,
		"secret123": false,
		"SECRET123": false,
		"Secretabc": false,
		"Se1":       false,
	}
	for pw, ok := range cases {
		ve := Struct(&credentials{Email: "a@b.co", Password: pw})
		if (ve == nil) != ok {
			t.Errorf("пароль %q: ожидалось ok=%v, получено %v", pw, ok, ve)
		}
	}
}

func TestHexColor(t *testing.T) {
	if ve := Struct(&models.CategoryInput{Name: "Herbal", Color: "#10B981"}); ve != nil {
		t.Errorf("валидный цвет отвергнут: %v", ve)
	}
	ve := Struct(&models.CategoryInput{Name: "Herbal", Color: "green"})
	if ve == nil || !strings.Contains(ve.Error(), "color") {
		t.Errorf("невалидный цвет принят: %v", ve)
	}
}
