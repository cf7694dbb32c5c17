package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories holds all repository instances
type Repositories struct {
	Group   *GroupRepository
	User    *UserRepository
	Message *MessageRepository
}

// NewRepositories creates instances of all repositories sharing one pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Group:   NewGroupRepository(db),
		User:    NewUserRepository(db),
		Message: NewMessageRepository(db),
	}
}
