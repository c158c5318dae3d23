package repository

import "gorm.io/gorm"

// CounterRepository 计数对账数据访问接口
// 从事实行（未删除的回复、点赞记录）重算冗余计数，可重复执行且无漂移。
type CounterRepository interface {
	ReconcilePostRepliesCount() (int64, error)
	ReconcilePostLikesCount() (int64, error)
	ReconcileReplyLikesCount() (int64, error)
}

// GormCounterRepository GORM 实现
type GormCounterRepository struct {
	db *gorm.DB
}

// NewCounterRepository 创建计数对账仓库
func NewCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db}
}

// ReconcilePostRepliesCount 重算帖子回复数，返回被修正的行数
func (r *GormCounterRepository) ReconcilePostRepliesCount() (int64, error) {
	res := r.db.Exec(`
		UPDATE posts SET replies_count = (
			SELECT COUNT(*) FROM replies
			WHERE replies.post_id = posts.id AND replies.deleted_at IS NULL
		)
		WHERE replies_count <> (
			SELECT COUNT(*) FROM replies
			WHERE replies.post_id = posts.id AND replies.deleted_at IS NULL
		)`)
	return res.RowsAffected, res.Error
}

// ReconcilePostLikesCount 重算帖子点赞数，返回被修正的行数
func (r *GormCounterRepository) ReconcilePostLikesCount() (int64, error) {
	res := r.db.Exec(`
		UPDATE posts SET likes_count = (
			SELECT COUNT(*) FROM likes
			WHERE likes.target_type = 'post' AND likes.target_id = posts.id
		)
		WHERE likes_count <> (
			SELECT COUNT(*) FROM likes
			WHERE likes.target_type = 'post' AND likes.target_id = posts.id
		)`)
	return res.RowsAffected, res.Error
}

// ReconcileReplyLikesCount 重算回复点赞数，返回被修正的行数
func (r *GormCounterRepository) ReconcileReplyLikesCount() (int64, error) {
	res := r.db.Exec(`
		UPDATE replies SET likes_count = (
			SELECT COUNT(*) FROM likes
			WHERE likes.target_type = 'reply' AND likes.target_id = replies.id
		)
		WHERE likes_count <> (
			SELECT COUNT(*) FROM likes
			WHERE likes.target_type = 'reply' AND likes.target_id = replies.id
		)`)
	return res.RowsAffected, res.Error
}
