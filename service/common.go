package service

import (
	"Loyo/models"
	"Loyo/pkg/log"
	"Loyo/pkg/response"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// orNotFound 查询错误归一：记录不存在映射成 40401，其余原样上抛
func orNotFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewNotFound(msg)
	}
	return err
}

// generalClassID 在等级列表里找 General 永久等级，缺失返回空串
func generalClassID(classes []models.CustomerClass) string {
	for i := range classes {
		if classes[i].Active && classes[i].Type == models.ClassTypePermanent && classes[i].Name == models.ClassNameGeneral {
			return classes[i].ID
		}
	}
	return ""
}

// logSecondary 次级步骤失败只留痕，不打断主流程
func logSecondary(msg, customerID, businessID string, err error) {
	log.L.Error(msg,
		zap.String("customer_id", customerID),
		zap.String("business_id", businessID),
		zap.Error(err),
	)
}
