package types

// BusinessSummary 客户侧会员摘要缓存里的一条（按商家）。
// 只是展示用缓存，可随时由权威记录全量重建。
type BusinessSummary struct {
	BusinessID      string `json:"business_id"`
	CustomerClassID string `json:"customer_class_id"`
	Status          string `json:"status"`
	JoinedAt        string `json:"joined_at"`       // 2006-01-02 15:04:05
	OfferPoints     int64  `json:"offer_points"`    // 营销发放（入会/推荐）
	PurchasePoints  int64  `json:"purchase_points"` // 消费产生
	TotalPoints     int64  `json:"total_points"`    // 带符号流水合计
}
