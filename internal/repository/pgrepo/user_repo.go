package pgrepo

import (
	"context"

	"github.com/mpetrenko/accountsvc/internal/domain"
	"github.com/mpetrenko/accountsvc/pkg/uow"
)

const findUserByIDQuery = `
SELECT id, created_at, updated_at, name
FROM users
WHERE id = $1`

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(db uow.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID ищет юзера по id. Возвращает domain.ErrRecordNotFound если запись
// не найдена, во всех других случаях - domain.ErrUnknown.
func (u *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := u.db.QueryRow(ctx, findUserByIDQuery, id).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.Name)
	if err != nil {
		return nil, convertErr(err, "finding user by id %d", id)
	}
	return &user, nil
}
