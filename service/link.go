package service

import (
	"Loyo/config"
	"Loyo/dao"
	"Loyo/models"
	"Loyo/pkg/link"
	"Loyo/pkg/log"
	"Loyo/pkg/snowflake"
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LinkService struct {
	Config  *config.Config
	LinkDAO *dao.ReferralLink
	Oss     *oss.Client
}

var _ ILinkService = (*LinkService)(nil)

type ILinkService interface {
	EnsureLink(ctx context.Context, customerID, businessID, classID string) (*models.ReferralLink, error)
	GetLink(ctx context.Context, customerID, businessID string) (*models.ReferralLink, error)
	RecordSuccess(ctx context.Context, customerID, businessID string, points int64)
	SyncClass(ctx context.Context, customerID, businessID, classID string)
	SignupURL(businessID, classID, referrerID string) string
	UploadQr(ctx context.Context, businessID string, payload []byte) (string, error)
}

// EnsureLink 首次入会时懒创建分享链接；已有则直接返回
func (s *LinkService) EnsureLink(ctx context.Context, customerID, businessID, classID string) (*models.ReferralLink, error) {
	existing, err := s.LinkDAO.FindByCustomerBusiness(ctx, customerID, businessID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	id := snowflake.GenID()
	shareURL := s.SignupURL(businessID, classID, customerID)

	l := &models.ReferralLink{
		ID:              id,
		CustomerID:      customerID,
		BusinessID:      businessID,
		CustomerClassID: classID,
		Code:            link.ShareCode(s.Config.Signup.Salt, id),
		URL:             shareURL,
	}

	// 二维码制品缺失不阻塞建链接，下次访问可补
	if qrURL, err := s.UploadQr(ctx, businessID, []byte(shareURL)); err == nil {
		l.QrURL = qrURL
	} else {
		log.L.Error("upload referral qr failed",
			zap.String("customer_id", customerID),
			zap.String("business_id", businessID),
			zap.Error(err),
		)
	}

	if err := s.LinkDAO.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *LinkService) GetLink(ctx context.Context, customerID, businessID string) (*models.ReferralLink, error) {
	l, err := s.LinkDAO.FindByCustomerBusiness(ctx, customerID, businessID)
	if err != nil {
		return nil, orNotFound(err, "分享链接不存在")
	}
	return l, nil
}

// RecordSuccess 成功推荐后的计数更新，次级步骤：失败打日志不中断
func (s *LinkService) RecordSuccess(ctx context.Context, customerID, businessID string, points int64) {
	if err := s.LinkDAO.IncrStats(ctx, customerID, businessID, points); err != nil {
		log.L.Error("incr referral link stats failed",
			zap.String("customer_id", customerID),
			zap.String("business_id", businessID),
			zap.Error(err),
		)
	}
}

// SyncClass 客户迁移等级后刷新链接上的等级引用，次级步骤
func (s *LinkService) SyncClass(ctx context.Context, customerID, businessID, classID string) {
	if err := s.LinkDAO.UpdateClass(ctx, customerID, businessID, classID); err != nil {
		log.L.Error("sync referral link class failed",
			zap.String("customer_id", customerID),
			zap.String("business_id", businessID),
			zap.Error(err),
		)
	}
}

func (s *LinkService) SignupURL(businessID, classID, referrerID string) string {
	return link.SignupURL(s.Config.Signup.Origin, businessID, classID, referrerID)
}

// UploadQr 把二维码载荷字节交给制品库换一个可长期访问的 URL。
// 图片渲染/变换在外部系统，这里只管存取
func (s *LinkService) UploadQr(ctx context.Context, businessID string, payload []byte) (string, error) {
	if s.Oss == nil {
		return "", errors.New("oss client 未初始化")
	}

	objectKey := fmt.Sprintf("qr/%s/%s.png", businessID, uuid.NewString())
	_, err := s.Oss.PutObject(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(s.Config.Oss.Bucket),
		Key:    oss.Ptr(objectKey),
		Body:   bytes.NewReader(payload),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", s.Config.Oss.PublicHost, objectKey), nil
}
