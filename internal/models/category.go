package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}
