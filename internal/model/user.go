package model

import "time"

// User 用户表 — 对应 users
type User struct {
	UserID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string    `gorm:"type:varchar(100);not null;uniqueIndex"         json:"username"`
	Email        *string   `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	PasswordHash string    `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:'teacher'"    json:"role"` // admin | teacher
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

