package dao

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopDemotions(t *testing.T) {
	testCases := []struct {
		name string
		// 按 utime 倒序
		topped []Article
		target int64

		wantSkip   bool
		wantDemote []int64
	}{
		{
			name:   "没有任何置顶",
			topped: []Article{},
			target: 1,
		},
		{
			name: "目标已置顶且不超上限",
			topped: []Article{
				{Id: 1}, {Id: 2}, {Id: 3},
			},
			target:   2,
			wantSkip: true,
		},
		{
			name: "未置顶且已满员",
			topped: []Article{
				{Id: 1}, {Id: 2}, {Id: 3},
			},
			target:     4,
			wantDemote: []int64{3},
		},
		{
			name: "未置顶且远超满员",
			topped: []Article{
				{Id: 1}, {Id: 2}, {Id: 3}, {Id: 4}, {Id: 5},
			},
			target:     6,
			wantDemote: []int64{3, 4, 5},
		},
		{
			name: "已置顶但总数超了上限",
			topped: []Article{
				{Id: 1}, {Id: 2}, {Id: 3}, {Id: 4},
			},
			target:     3,
			wantDemote: []int64{4},
		},
		{
			name: "还没满员",
			topped: []Article{
				{Id: 1},
			},
			target: 2,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			skip, demote := topDemotions(tc.topped, tc.target)
			assert.Equal(t, tc.wantSkip, skip)
			assert.Equal(t, tc.wantDemote, demote)
			if !skip {
				// 写完之后置顶总数不会超过 3
				kept := 0
				for _, art := range tc.topped {
					if art.Id == tc.target {
						continue
					}
					demoted := false
					for _, id := range demote {
						if art.Id == id {
							demoted = true
						}
					}
					if !demoted {
						kept++
					}
				}
				assert.LessOrEqual(t, kept+1, 3)
			}
		})
	}
}
