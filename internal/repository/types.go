package repository

import "time"

// PostListFilter 查询帖子列表的过滤条件
type PostListFilter struct {
	Page           int
	PageSize       int
	Category       string
	UserID         uint
	Keyword        string
	IncludeDeleted bool
	OrderBy        string
}

// ReplyListFilter 查询回复列表的过滤条件
type ReplyListFilter struct {
	Page           int
	PageSize       int
	PostID         uint
	UserID         uint
	Keyword        string
	IncludeDeleted bool
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Email    string
	Status   string
	IsBanned *bool
}

// AuthzAuditLogListFilter 查询权限审计日志的过滤条件
type AuthzAuditLogListFilter struct {
	Page            int
	PageSize        int
	OperatorAdminID uint
	TargetAdminID   uint
	Action          string
	Role            string
	Object          string
	Method          string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}

// UserLoginLogListFilter 查询用户登录日志的过滤条件
type UserLoginLogListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Email       string
	Status      string
	FailReason  string
	ClientIP    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
