package utils

import "testing"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Rahasia123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Rahasia123" {
		t.Fatal("пароль сохранён в открытом виде")
	}
	if !CheckPasswordHash("Rahasia123", hash) {
		t.Error("верный пароль не прошёл проверку")
	}
	if CheckPasswordHash("rahasia123", hash) {
		t.Error("неверный пароль прошёл проверку")
	}
}
