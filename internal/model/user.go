package model

import "time"

type User struct {
	ID        int64     `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	FullName  string    `db:"full_name" json:"full_name"`
	IsAllowed bool      `db:"is_allowed" json:"is_allowed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
