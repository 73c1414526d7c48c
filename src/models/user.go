package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User บัญชีผู้ใช้ระบบ (ผู้ใช้คนแรกเป็น admin อัตโนมัติ)
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	IsAdmin      bool               `bson:"isAdmin" json:"isAdmin"`
	IsApproved   bool               `bson:"isApproved" json:"isApproved"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Role ใช้ใส่ใน JWT claims
func (u *User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// UserList ผลลัพธ์สำหรับหน้าจัดการผู้ใช้
type UserList struct {
	Pending  []User `json:"pending"`
	Approved []User `json:"approved"`
}
