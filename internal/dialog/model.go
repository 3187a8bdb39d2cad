package dialog

type State string

const (
	StateIdle State = "idle"

	// Вход в API
	StateLoginUsername State = "login_username"
	StateLoginPassword State = "login_password" // в payload лежит username

	// Отчёт открыт; в payload период и id сообщения с отчётом
	StateReport State = "report"
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}
