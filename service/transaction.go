package service

import (
	"Loyo/dao"
	"Loyo/models"
	"Loyo/pkg/log"
	"Loyo/pkg/response"
	"Loyo/pkg/rocketmq"
	"Loyo/pkg/snowflake"
	"Loyo/types"
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

type TransactionService struct {
	TxDAO     *dao.Transaction
	Publisher *rocketmq.Publisher
}

var _ ITransactionService = (*TransactionService)(nil)

type ITransactionService interface {
	Append(ctx context.Context, customerID, businessID string, amount int64, txType models.TransactionType, description, relatedID string) (*models.Transaction, error)
	Sum(ctx context.Context, customerID, businessID string) (int64, error)
	List(ctx context.Context, customerID, businessID string, cursor int64, limit int) (*types.ListTransactionsResp, error)
}

// Append 落一条不可变流水。写入本身单条原子；写入成功后的事件广播
// 属于次级步骤，失败只打日志。
func (t *TransactionService) Append(ctx context.Context, customerID, businessID string, amount int64, txType models.TransactionType, description, relatedID string) (*models.Transaction, error) {
	if !txType.Valid() {
		return nil, response.NewInvalid("未知的流水类型: " + string(txType))
	}

	tx := &models.Transaction{
		ID:          snowflake.GenID(),
		CustomerID:  customerID,
		BusinessID:  businessID,
		Amount:      amount,
		Type:        txType,
		Description: description,
		RelatedID:   relatedID,
	}
	if err := t.TxDAO.Append(ctx, tx); err != nil {
		return nil, err
	}

	t.publish(ctx, tx)
	return tx, nil
}

func (t *TransactionService) publish(ctx context.Context, tx *models.Transaction) {
	if t.Publisher == nil {
		return
	}
	body, err := json.Marshal(tx)
	if err != nil {
		return
	}
	if err := t.Publisher.Publish(ctx, body); err != nil {
		log.L.Error("publish points event failed",
			zap.Int64("tx_id", tx.ID),
			zap.Error(err),
		)
	}
}

// Sum 流水求和 = 余额的最终事实，与会员表缓存不一致时以这里为准
func (t *TransactionService) Sum(ctx context.Context, customerID, businessID string) (int64, error) {
	return t.TxDAO.SumByCustomerBusiness(ctx, customerID, businessID)
}

func (t *TransactionService) List(ctx context.Context, customerID, businessID string, cursor int64, limit int) (*types.ListTransactionsResp, error) {
	txs, err := t.TxDAO.ListByCustomerBusiness(ctx, customerID, businessID, cursor, limit+1)
	if err != nil {
		return nil, err
	}

	resp := &types.ListTransactionsResp{
		Records: make([]types.TransactionRecord, 0),
		HasMore: false,
	}

	if len(txs) > limit {
		resp.HasMore = true
		txs = txs[:limit]
		resp.NextCursor = txs[len(txs)-1].ID
	}

	for _, tx := range txs {
		resp.Records = append(resp.Records, types.TransactionRecord{
			ID:          tx.ID,
			Amount:      tx.Amount,
			Type:        string(tx.Type),
			Description: tx.Description,
			RelatedID:   tx.RelatedID,
			CreatedAt:   tx.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return resp, nil
}
