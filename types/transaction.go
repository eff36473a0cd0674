package types

// TransactionRecord 单条积分流水展示
type TransactionRecord struct {
	ID          int64  `json:"id"`
	Amount      int64  `json:"amount"` // 正数入账，负数支出
	Type        string `json:"type"`
	Description string `json:"description"`
	RelatedID   string `json:"related_id,omitempty"`
	CreatedAt   string `json:"created_at"` // 2006-01-02 15:04:05
}

// ListTransactionsResp 流水列表包装
type ListTransactionsResp struct {
	Records    []TransactionRecord `json:"records"`
	NextCursor int64               `json:"next_cursor"` // 游标：用于下一页请求
	HasMore    bool                `json:"has_more"`
}

// ListTransactionsReq 流水查询
type ListTransactionsReq struct {
	BusinessID string `form:"business_id" binding:"required"`
	Cursor     int64  `form:"cursor"`
	Limit      int    `form:"limit,default=10"`
}
