package repository

import (
	"context"
	"time"

	"blog/internal/domain"
	"blog/internal/repository/dao"
)

var ErrRoleNotFound = dao.ErrDataNotFound

// RoleResourceMapping 异步查询的结果，Mapping 是角色 id 到资源 id 列表
type RoleResourceMapping struct {
	Mapping map[int64][]int64
	Err     error
}

type RoleRepository interface {
	RoleNamesByUserId(ctx context.Context, userId int64) ([]string, error)
	RoleNamesByResourceId(ctx context.Context, resourceId int64) ([]string, error)
	RoleIdsByResourceId(ctx context.Context, resourceId int64) ([]int64, error)
	// AsyncMappingByRoleIds 后台发起映射查询，调用方在需要结果时从通道取。
	// 通道只会收到一条结果，读完即关闭
	AsyncMappingByRoleIds(ctx context.Context, roleIds []int64) <-chan RoleResourceMapping
	ListAll(ctx context.Context) ([]domain.Role, error)
	Page(ctx context.Context, keywords string, page domain.Page) ([]domain.Role, int64, error)
	UpdateIsDisabled(ctx context.Context, id int64, isDisabled bool) error
	Save(ctx context.Context, role domain.Role) error
	DeleteByIds(ctx context.Context, ids []int64) error
}

type CachedRoleRepository struct {
	dao dao.RoleDAO
}

func NewCachedRoleRepository(d dao.RoleDAO) RoleRepository {
	return &CachedRoleRepository{
		dao: d,
	}
}

func (repo *CachedRoleRepository) RoleNamesByUserId(ctx context.Context, userId int64) ([]string, error) {
	return repo.dao.RoleNamesByUserId(ctx, userId)
}

func (repo *CachedRoleRepository) RoleNamesByResourceId(ctx context.Context, resourceId int64) ([]string, error) {
	return repo.dao.RoleNamesByResourceId(ctx, resourceId)
}

func (repo *CachedRoleRepository) RoleIdsByResourceId(ctx context.Context, resourceId int64) ([]int64, error) {
	return repo.dao.RoleIdsByResourceId(ctx, resourceId)
}

func (repo *CachedRoleRepository) AsyncMappingByRoleIds(ctx context.Context,
	roleIds []int64) <-chan RoleResourceMapping {
	res := make(chan RoleResourceMapping, 1)
	go func() {
		defer close(res)
		rows, err := repo.dao.MappingByRoleIds(ctx, roleIds)
		if err != nil {
			res <- RoleResourceMapping{Err: err}
			return
		}
		mapping := make(map[int64][]int64, len(roleIds))
		for _, row := range rows {
			mapping[row.RoleId] = append(mapping[row.RoleId], row.ResourceId)
		}
		res <- RoleResourceMapping{Mapping: mapping}
	}()
	return res
}

func (repo *CachedRoleRepository) ListAll(ctx context.Context) ([]domain.Role, error) {
	roles, err := repo.dao.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return repo.toDomains(roles), nil
}

func (repo *CachedRoleRepository) Page(ctx context.Context, keywords string,
	page domain.Page) ([]domain.Role, int64, error) {
	roles, total, err := repo.dao.Page(ctx, keywords, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, err
	}
	return repo.toDomains(roles), total, nil
}

func (repo *CachedRoleRepository) UpdateIsDisabled(ctx context.Context, id int64, isDisabled bool) error {
	return repo.dao.UpdateIsDisabled(ctx, id, isDisabled)
}

func (repo *CachedRoleRepository) Save(ctx context.Context, role domain.Role) error {
	return repo.dao.Save(ctx, dao.Role{
		Id:    role.Id,
		Name:  role.Name,
		Label: role.Label,
	}, role.ResourceIds)
}

func (repo *CachedRoleRepository) DeleteByIds(ctx context.Context, ids []int64) error {
	return repo.dao.DeleteByIds(ctx, ids)
}

func (repo *CachedRoleRepository) toDomains(roles []dao.Role) []domain.Role {
	res := make([]domain.Role, 0, len(roles))
	for _, r := range roles {
		res = append(res, domain.Role{
			Id:         r.Id,
			Name:       r.Name,
			Label:      r.Label,
			IsDisabled: r.IsDisabled,
			Ctime:      time.UnixMilli(r.Ctime),
		})
	}
	return res
}
