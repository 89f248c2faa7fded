package payloads

// ResetEmailPayload представляет данные, необходимые для отправки письма
// со ссылкой на сброс пароля через RabbitMQ.
type ResetEmailPayload struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	ResetLink string `json:"reset_link"`
}
