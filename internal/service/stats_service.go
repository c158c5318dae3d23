package service

import (
	"github.com/marron-next/internal/constants"
	"github.com/marron-next/internal/repository"
)

// StatsService 论坛统计服务
type StatsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService 创建统计服务
func NewStatsService(statsRepo repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// StatsSummary 统计汇总
type StatsSummary struct {
	TotalUsers      int64              `json:"total_users"`
	TotalPosts      int64              `json:"total_posts"`
	TotalReplies    int64              `json:"total_replies"`
	TotalLikes      int64              `json:"total_likes"`
	PostsByCategory map[string]int64   `json:"posts_by_category"`
	MostActiveUsers []StatsActiveUser  `json:"most_active_users"`
}

// StatsActiveUser 活跃用户条目
type StatsActiveUser struct {
	UserNumber  uint64 `json:"user_number"`
	DisplayName string `json:"display_name"`
	Activity    int64  `json:"activity"`
}

// Summary 获取统计汇总
func (s *StatsService) Summary() (*StatsSummary, error) {
	totals, err := s.statsRepo.GetTotals()
	if err != nil {
		return nil, err
	}

	byCategory, err := s.statsRepo.GetPostCountByCategory()
	if err != nil {
		return nil, err
	}
	// 未出现过的分类补零，前端无需特判
	for _, category := range constants.SupportedPostCategories {
		if _, ok := byCategory[category]; !ok {
			byCategory[category] = 0
		}
	}

	activeRows, err := s.statsRepo.GetMostActiveUsers(10)
	if err != nil {
		return nil, err
	}
	active := make([]StatsActiveUser, 0, len(activeRows))
	for _, row := range activeRows {
		if row.Activity <= 0 {
			continue
		}
		active = append(active, StatsActiveUser{
			UserNumber:  row.UserNumber,
			DisplayName: row.DisplayName,
			Activity:    row.Activity,
		})
	}

	return &StatsSummary{
		TotalUsers:      totals.Users,
		TotalPosts:      totals.Posts,
		TotalReplies:    totals.Replies,
		TotalLikes:      totals.Likes,
		PostsByCategory: byCategory,
		MostActiveUsers: active,
	}, nil
}
