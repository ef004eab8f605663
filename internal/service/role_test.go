package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/internal/domain"
	"blog/internal/repository"
)

type roleFakeRepo struct {
	repository.RoleRepository

	roles   []domain.Role
	mapping map[int64][]int64
}

func (f *roleFakeRepo) Page(ctx context.Context, keywords string,
	page domain.Page) ([]domain.Role, int64, error) {
	return f.roles, int64(len(f.roles)), nil
}

func (f *roleFakeRepo) AsyncMappingByRoleIds(ctx context.Context,
	roleIds []int64) <-chan repository.RoleResourceMapping {
	res := make(chan repository.RoleResourceMapping, 1)
	go func() {
		defer close(res)
		res <- repository.RoleResourceMapping{Mapping: f.mapping}
	}()
	return res
}

func TestRoleService_PageSearch(t *testing.T) {
	repo := &roleFakeRepo{
		roles: []domain.Role{
			{Id: 1, Name: "管理员", Label: "admin"},
			{Id: 2, Name: "访客", Label: "guest"},
		},
		mapping: map[int64][]int64{
			1: {10, 11, 12},
		},
	}
	svc := NewRoleService(repo)

	roles, total, err := svc.PageSearch(context.Background(),
		domain.Page{Num: 1, Size: 10}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, roles, 2)
	// 映射结果按角色 id 拼装
	assert.Equal(t, []int64{10, 11, 12}, roles[0].ResourceIds)
	assert.Nil(t, roles[1].ResourceIds)
}
