package domain

// 网站配置项的 key
const (
	// WebConfigKeyArticleCover 文章默认封面
	WebConfigKeyArticleCover = "article_cover"
)

type WebConfig struct {
	Key   string
	Value string
}
