package types

// CreateReferralReq 创建推荐记录
type CreateReferralReq struct {
	BusinessID string `json:"business_id" binding:"required"`
	ReferredID string `json:"referred_id" binding:"required"`
}

// DistributeReq 推荐积分发放（referral 完成的幂等入口）
type DistributeReq struct {
	ReferralID int64  `json:"referral_id" binding:"required"`
	BusinessID string `json:"business_id" binding:"required"`
}

// ReferralLinkResp 分享链接 + 聚合计数
type ReferralLinkResp struct {
	Code                string `json:"code"`
	URL                 string `json:"url"`
	QrURL               string `json:"qr_url"`
	TotalReferrals      int64  `json:"total_referrals"`
	TotalReferralPoints int64  `json:"total_referral_points"`
}
