package response

import (
	"errors"
)

// 业务错误码分段：400xx 参数错误, 404xx 记录不存在,
// 409xx 冲突（重复创建/重复发放）, 422xx 完整性违规。
// 次级步骤失败（计数器、缓存、链接统计）不产生错误码，只打日志。
const (
	CodeInvalid   = 40001
	CodeNotFound  = 40401
	CodeConflict  = 40901
	CodeIntegrity = 42201
)

type BizError struct {
	Code int
	Msg  string
}

func (e *BizError) Error() string {
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

func NewInvalid(msg string) *BizError {
	return NewError(CodeInvalid, msg)
}

func NewNotFound(msg string) *BizError {
	return NewError(CodeNotFound, msg)
}

func NewConflict(msg string) *BizError {
	return NewError(CodeConflict, msg)
}

func NewIntegrity(msg string) *BizError {
	return NewError(CodeIntegrity, msg)
}

func codeOf(err error) int {
	var be *BizError
	if errors.As(err, &be) {
		return be.Code
	}
	return 0
}

// IsConflict 是否是重复创建/重复发放类错误，调用方不应自动重试
func IsConflict(err error) bool { return codeOf(err) == CodeConflict }

func IsNotFound(err error) bool { return codeOf(err) == CodeNotFound }

func IsInvalid(err error) bool { return codeOf(err) == CodeInvalid }

// IsIntegrity 完整性违规（例如给非会员发推荐积分），必须向上抛
func IsIntegrity(err error) bool { return codeOf(err) == CodeIntegrity }
