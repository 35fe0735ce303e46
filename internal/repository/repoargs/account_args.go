package repoargs

import (
	"time"

	"github.com/mpetrenko/accountsvc/internal/domain"
)

type AccountCreate struct {
	UserID       int64
	Number       string
	Balance      int64
	Status       domain.AccountStatus
	RegisteredAt time.Time
}

// AccountUpdate обновление счета по месту (save-in-place). UnregisteredAt равный nil
// оставляет поле в базе пустым.
type AccountUpdate struct {
	ID             int64
	Balance        int64
	Status         domain.AccountStatus
	UnregisteredAt *time.Time
}
