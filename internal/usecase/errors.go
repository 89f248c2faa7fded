package usecase

import "errors"

// Ошибки бизнес-логики. Обработчики транслируют их в HTTP-коды,
// детали внутренних сбоев наружу не выходят.
var (
	// ErrEmailTaken — пользователь с таким email уже существует (409).
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrInvalidCredentials покрывает и неизвестный email, и неверный пароль:
	// существование учетной записи не должно быть различимо по ответу (401).
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidResetToken — токен сброса битый, истекший, не того типа
	// или уже использованный (400).
	ErrInvalidResetToken = errors.New("reset token is invalid or expired")

	// ErrUserNotFound — subject токена не указывает на существующего пользователя (404).
	ErrUserNotFound = errors.New("user not found")

	// ErrResumeNotPDF — загруженное резюме не является PDF (400).
	ErrResumeNotPDF = errors.New("resume must be a PDF")

	// ErrNoResume — у профиля нет сохраненного резюме (404).
	ErrNoResume = errors.New("no resume available")
)
