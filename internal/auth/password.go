package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrNoEmptyString запрещает пустые пароли до обращения к bcrypt.
var ErrNoEmptyString = errors.New("password must not be empty")

// ErrMismatchedHashAndPassword возвращается при несовпадении пароля и хеша.
var ErrMismatchedHashAndPassword = errors.New("password does not match")

// PasswordHasher — односторонний солёный хеш с настраиваемой стоимостью.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher создает hasher. При cost вне допустимого диапазона
// bcrypt берется стоимость по умолчанию.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash генерирует хеш пароля.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(b), err
}

// Compare сверяет открытый пароль с сохранённым хешем.
func (h *PasswordHasher) Compare(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}
