package domain

import "time"

// Role 角色。Name 是中文名，Label 是英文标识
type Role struct {
	Id         int64
	Name       string
	Label      string
	IsDisabled bool

	// 关联的资源 id 列表
	ResourceIds []int64

	Ctime time.Time
}
