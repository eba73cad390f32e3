package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// custoBcrypt acima do default — credenciais administrativas
const custoBcrypt = 12

// HashPassword gera o hash bcrypt de uma senha
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("senha vazia não pode ser processada")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), custoBcrypt)
	if err != nil {
		return "", fmt.Errorf("erro na geração do hash: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword compara uma senha com o hash armazenado
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
