package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Role 角色表
type Role struct {
	Id int64 `gorm:"primaryKey,autoIncrement"`
	// 中文名
	Name string `gorm:"type:varchar(64)"`
	// 英文标识
	Label      string `gorm:"type:varchar(64)"`
	IsDisabled bool
	Ctime      int64
	Utime      int64
}

// RoleMtmResource 角色与资源的多对多映射表
type RoleMtmResource struct {
	Id         int64 `gorm:"primaryKey,autoIncrement"`
	RoleId     int64 `gorm:"uniqueIndex:rid_resid"`
	ResourceId int64 `gorm:"uniqueIndex:rid_resid"`
}

// UserMtmRole 用户与角色的多对多映射表
type UserMtmRole struct {
	Id     int64 `gorm:"primaryKey,autoIncrement"`
	UserId int64 `gorm:"uniqueIndex:uid_rid"`
	RoleId int64 `gorm:"uniqueIndex:uid_rid"`
}

type RoleDAO interface {
	RoleNamesByUserId(ctx context.Context, userId int64) ([]string, error)
	RoleNamesByResourceId(ctx context.Context, resourceId int64) ([]string, error)
	RoleIdsByResourceId(ctx context.Context, resourceId int64) ([]int64, error)
	// MappingByRoleIds 一条批量查询取回角色到资源的映射行。
	// roleIds 为空表示取全量
	MappingByRoleIds(ctx context.Context, roleIds []int64) ([]RoleMtmResource, error)
	ListAll(ctx context.Context) ([]Role, error)
	Page(ctx context.Context, keywords string, offset, limit int64) ([]Role, int64, error)
	UpdateIsDisabled(ctx context.Context, id int64, isDisabled bool) error
	Save(ctx context.Context, role Role, resourceIds []int64) error
	DeleteByIds(ctx context.Context, ids []int64) error
}

type GORMRoleDAO struct {
	db *gorm.DB
}

func NewGORMRoleDAO(db *gorm.DB) RoleDAO {
	return &GORMRoleDAO{
		db: db,
	}
}

func (dao *GORMRoleDAO) RoleNamesByUserId(ctx context.Context, userId int64) ([]string, error) {
	var names []string
	err := dao.db.WithContext(ctx).Model(&Role{}).
		Joins("JOIN user_mtm_roles ON user_mtm_roles.role_id = roles.id").
		Where("user_mtm_roles.user_id = ? AND roles.is_disabled = ?", userId, false).
		Pluck("roles.label", &names).Error
	return names, err
}

func (dao *GORMRoleDAO) RoleNamesByResourceId(ctx context.Context, resourceId int64) ([]string, error) {
	var names []string
	err := dao.db.WithContext(ctx).Model(&Role{}).
		Joins("JOIN role_mtm_resources ON role_mtm_resources.role_id = roles.id").
		Where("role_mtm_resources.resource_id = ? AND roles.is_disabled = ?", resourceId, false).
		Pluck("roles.label", &names).Error
	return names, err
}

func (dao *GORMRoleDAO) RoleIdsByResourceId(ctx context.Context, resourceId int64) ([]int64, error) {
	var ids []int64
	err := dao.db.WithContext(ctx).Model(&RoleMtmResource{}).
		Where("resource_id = ?", resourceId).
		Pluck("role_id", &ids).Error
	return ids, err
}

func (dao *GORMRoleDAO) MappingByRoleIds(ctx context.Context, roleIds []int64) ([]RoleMtmResource, error) {
	var mappings []RoleMtmResource
	query := dao.db.WithContext(ctx)
	if len(roleIds) > 0 {
		query = query.Where("role_id IN ?", roleIds)
	}
	err := query.Find(&mappings).Error
	return mappings, err
}

func (dao *GORMRoleDAO) ListAll(ctx context.Context) ([]Role, error) {
	var roles []Role
	err := dao.db.WithContext(ctx).
		Select("id", "name", "label").
		Find(&roles).Error
	return roles, err
}

func (dao *GORMRoleDAO) Page(ctx context.Context, keywords string, offset, limit int64) ([]Role, int64, error) {
	base := func() *gorm.DB {
		query := dao.db.WithContext(ctx).Model(&Role{})
		if keywords != "" {
			query = query.Where("name LIKE ?", "%"+keywords+"%")
		}
		return query
	}
	var total int64
	err := base().Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	var roles []Role
	err = base().
		Order("id ASC").
		Offset(int(offset)).Limit(int(limit)).
		Find(&roles).Error
	return roles, total, err
}

func (dao *GORMRoleDAO) UpdateIsDisabled(ctx context.Context, id int64, isDisabled bool) error {
	return dao.db.WithContext(ctx).Model(&Role{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_disabled": isDisabled,
			"utime":       time.Now().UnixMilli(),
		}).Error
}

// Save 保存角色并重建资源映射，两步在一个事务里
func (dao *GORMRoleDAO) Save(ctx context.Context, role Role, resourceIds []int64) error {
	return dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		if role.Id == 0 {
			role.Ctime = now
			role.Utime = now
			if err := tx.Create(&role).Error; err != nil {
				return err
			}
		} else {
			res := tx.Model(&Role{}).Where("id = ?", role.Id).
				Updates(map[string]any{
					"name":  role.Name,
					"label": role.Label,
					"utime": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrDataNotFound
			}
		}

		err := tx.Where("role_id = ?", role.Id).Delete(&RoleMtmResource{}).Error
		if err != nil {
			return err
		}
		if len(resourceIds) == 0 {
			return nil
		}
		mappings := make([]RoleMtmResource, 0, len(resourceIds))
		for _, rid := range resourceIds {
			mappings = append(mappings, RoleMtmResource{RoleId: role.Id, ResourceId: rid})
		}
		return tx.Create(&mappings).Error
	})
}

func (dao *GORMRoleDAO) DeleteByIds(ctx context.Context, ids []int64) error {
	return dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id IN ?", ids).Delete(&Role{}).Error
		if err != nil {
			return err
		}
		err = tx.Where("role_id IN ?", ids).Delete(&RoleMtmResource{}).Error
		if err != nil {
			return err
		}
		return tx.Where("role_id IN ?", ids).Delete(&UserMtmRole{}).Error
	})
}
