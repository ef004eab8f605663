package service

import (
	"context"

	"blog/internal/domain"
	"blog/internal/repository"
)

type RoleService interface {
	RoleNamesByUserId(ctx context.Context, userId int64) ([]string, error)
	RoleNamesByResourceId(ctx context.Context, resourceId int64) ([]string, error)
	ListRoleIdsByResourceId(ctx context.Context, resourceId int64) ([]int64, error)
	ListDigest(ctx context.Context) ([]domain.Role, error)
	PageSearch(ctx context.Context, page domain.Page, keywords string) ([]domain.Role, int64, error)
	UpdateIsDisabled(ctx context.Context, id int64, isDisabled bool) error
	Save(ctx context.Context, role domain.Role) error
	Delete(ctx context.Context, ids []int64) error
}

type roleService struct {
	repo repository.RoleRepository
}

func NewRoleService(repo repository.RoleRepository) RoleService {
	return &roleService{
		repo: repo,
	}
}

func (svc *roleService) RoleNamesByUserId(ctx context.Context, userId int64) ([]string, error) {
	return svc.repo.RoleNamesByUserId(ctx, userId)
}

func (svc *roleService) RoleNamesByResourceId(ctx context.Context, resourceId int64) ([]string, error) {
	return svc.repo.RoleNamesByResourceId(ctx, resourceId)
}

func (svc *roleService) ListRoleIdsByResourceId(ctx context.Context, resourceId int64) ([]int64, error) {
	return svc.repo.RoleIdsByResourceId(ctx, resourceId)
}

func (svc *roleService) ListDigest(ctx context.Context) ([]domain.Role, error) {
	return svc.repo.ListAll(ctx)
}

// PageSearch 资源映射和分页查询互不依赖，
// 先把映射放到后台查，等分页结果回来再取映射拼装
func (svc *roleService) PageSearch(ctx context.Context, page domain.Page,
	keywords string) ([]domain.Role, int64, error) {
	fut := svc.repo.AsyncMappingByRoleIds(ctx, nil)
	roles, total, err := svc.repo.Page(ctx, keywords, page)
	if err != nil {
		return nil, 0, err
	}
	if err := checkPage(page, total); err != nil {
		return nil, 0, err
	}
	res := <-fut
	if res.Err != nil {
		return nil, 0, res.Err
	}
	for i := range roles {
		roles[i].ResourceIds = res.Mapping[roles[i].Id]
	}
	return roles, total, nil
}

func (svc *roleService) UpdateIsDisabled(ctx context.Context, id int64, isDisabled bool) error {
	return svc.repo.UpdateIsDisabled(ctx, id, isDisabled)
}

func (svc *roleService) Save(ctx context.Context, role domain.Role) error {
	return svc.repo.Save(ctx, role)
}

func (svc *roleService) Delete(ctx context.Context, ids []int64) error {
	return svc.repo.DeleteByIds(ctx, ids)
}
