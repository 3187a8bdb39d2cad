package users

import "time"

// User пользователь бота (профиль Telegram).
type User struct {
	ID         int64
	TelegramID int64
	ChatID     int64
	Username   string
	FirstName  string
	LastName   string
	CreatedAt  time.Time
	LastSeenAt time.Time
}

type Telegram struct {
	ID        int64
	ChatID    int64
	Username  string
	FirstName string
	LastName  string
}

// DisplayName имя для приветствия.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return "@" + u.Username
	default:
		return "коллега"
	}
}
