package domain

import "time"

type User struct {
	Id         int64
	Username   string
	Password   string
	Email      string
	Nickname   string
	Avatar     string
	Intro      string
	Website    string
	IsDisabled bool

	Ctime time.Time
}
