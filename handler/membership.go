package handler

import (
	"Loyo/config"
	"Loyo/middleware"
	"Loyo/models"
	"Loyo/pkg/context"
	"Loyo/pkg/log"
	"Loyo/pkg/response"
	"Loyo/service"
	"Loyo/types"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Membership struct {
	Config             *config.Config
	MembershipService  service.IMembershipService
	ReferralService    service.IReferralService
	TransactionService service.ITransactionService
	MigrationService   service.IMigrationService
}

func (h *Membership) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	memberships := r.Group("/v1/memberships")
	memberships.POST("/join", authorize, context.Wrap(h.Join))
	memberships.GET("/:business_id", authorize, context.Wrap(h.GetMembership))
	memberships.POST("/:business_id/visit", authorize, context.Wrap(h.RecordVisit))
	memberships.GET("/:business_id/balance", authorize, context.Wrap(h.GetBalance))
	memberships.GET("/:business_id/transactions", authorize, context.Wrap(h.ListTransactions))
	memberships.GET("/:business_id/migrations", authorize, context.Wrap(h.ListMigrations))

	points := r.Group("/v1/businesses/:business_id/points")
	points.POST("/adjust", authorize, context.Wrap(h.AdjustPoints))
}

// Join 入会。带 referrer_id 走推荐流程：落位由商家路由策略决定，
// 推荐积分发放失败只记录，绝不阻塞注册本身。
func (h *Membership) Join(c *gin.Context) error {
	var req types.JoinReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewInvalid(err.Error())
	}
	customerID, err := context.GetCustomerID(c)
	if err != nil {
		return err
	}

	if req.ReferrerID != "" {
		m, referral, err := h.ReferralService.HandleReferredSignup(c, req.BusinessID, customerID, req.ReferrerID)
		if err != nil {
			return err
		}
		h.checkTriggers(c, customerID, req.BusinessID)
		response.Success(c, gin.H{"membership": m, "referral": referral})
		return nil
	}

	m, err := h.MembershipService.CreateMembership(c, customerID, req.BusinessID, req.ClassID, nil)
	if err != nil {
		return err
	}
	h.checkTriggers(c, customerID, req.BusinessID)
	response.Success(c, m)
	return nil
}

func (h *Membership) GetMembership(c *gin.Context) error {
	customerID, err := context.GetCustomerID(c)
	if err != nil {
		return err
	}

	m, err := h.MembershipService.GetMembership(c, customerID, c.Param("business_id"))
	if err != nil {
		return err
	}
	response.Success(c, m)
	return nil
}

// RecordVisit 到店打卡，随手评估一次自动迁移规则
func (h *Membership) RecordVisit(c *gin.Context) error {
	customerID, err := context.GetCustomerID(c)
	if err != nil {
		return err
	}
	businessID := c.Param("business_id")

	if err := h.MembershipService.RecordVisit(c, customerID, businessID); err != nil {
		return err
	}
	h.checkTriggers(c, customerID, businessID)
	response.Success(c, nil)
	return nil
}

// AdjustPoints 商家侧积分调整（消费得分/核销/人工调整）
func (h *Membership) AdjustPoints(c *gin.Context) error {
	var req types.AdjustPointsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewInvalid(err.Error())
	}
	businessID := c.Param("business_id")

	m, err := h.MembershipService.AdjustPoints(c, req.CustomerID, businessID,
		req.Amount, models.TransactionType(req.Type), req.Description)
	if err != nil {
		return err
	}
	h.checkTriggers(c, req.CustomerID, businessID)
	response.Success(c, m)
	return nil
}

// GetBalance 会员表余额 + 流水求和一起返回。两者不一致即计数漂移，
// 流水求和是最终事实
func (h *Membership) GetBalance(c *gin.Context) error {
	customerID, err := context.GetCustomerID(c)
	if err != nil {
		return err
	}
	businessID := c.Param("business_id")

	m, err := h.MembershipService.GetMembership(c, customerID, businessID)
	if err != nil {
		return err
	}
	ledger, err := h.TransactionService.Sum(c, customerID, businessID)
	if err != nil {
		return err
	}
	response.Success(c, types.BalanceResp{
		TotalPoints:         m.TotalPoints,
		TotalPointsEarned:   m.TotalPointsEarned,
		TotalPointsRedeemed: m.TotalPointsRedeemed,
		TotalPointsValue:    m.TotalPointsValue,
		LedgerTotal:         ledger,
	})
	return nil
}

func (h *Membership) ListTransactions(c *gin.Context) error {
	customerID, err := context.GetCustomerID(c)
	if err != nil {
		return err
	}

	cursor := int64(0)
	if v := c.Query("cursor"); v != "" {
		if cursor, err = strconv.ParseInt(v, 10, 64); err != nil {
			return response.NewInvalid("cursor参数错误")
		}
	}
	limit := 10
	if v := c.Query("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit <= 0 || limit > 100 {
			return response.NewInvalid("limit参数错误")
		}
	}

	resp, err := h.TransactionService.List(c, customerID, c.Param("business_id"), cursor, limit)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Membership) ListMigrations(c *gin.Context) error {
	customerID, err := context.GetCustomerID(c)
	if err != nil {
		return err
	}

	migrations, err := h.MigrationService.ListMigrations(c, customerID, c.Param("business_id"))
	if err != nil {
		return err
	}
	response.Success(c, migrations)
	return nil
}

// checkTriggers 积分/到店变化后的机会性迁移评估，失败只留痕
func (h *Membership) checkTriggers(c *gin.Context, customerID, businessID string) {
	if _, err := h.MigrationService.CheckTriggers(c, customerID, businessID); err != nil {
		log.L.Error("check migration triggers failed",
			zap.String("customer_id", customerID),
			zap.String("business_id", businessID),
			zap.Error(err))
	}
}
