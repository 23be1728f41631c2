package models

import "time"

type Role string

const (
	Student Role = "student"
	Teacher Role = "teacher"
	Staff   Role = "staff"
	Admin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case Student, Teacher, Staff, Admin:
		return true
	}
	return false
}

type User struct {
	ID          int64
	TelegramID  int64
	Name        string
	Email       string
	Role        Role
	IsSuperuser bool
	IsActive    bool
	GroupID     *int64
	CreatedAt   time.Time
}

// IsStaffLike — роль staff или суперпользователь: даёт права уровня
// редактирования курса наравне с преподавателем.
func (u *User) IsStaffLike() bool {
	return u.IsSuperuser || u.Role == Staff
}

func (u *User) IsTeacher() bool { return u.Role == Teacher }
func (u *User) IsStudent() bool { return u.Role == Student }
