package domain

// HotScore 一篇文章的热度
type HotScore struct {
	ArticleId int64
	Score     float64
}
