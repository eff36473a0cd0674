package response

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCodes(t *testing.T) {
	cases := []struct {
		err  *BizError
		code int
	}{
		{NewInvalid("参数错误"), CodeInvalid},
		{NewNotFound("记录不存在"), CodeNotFound},
		{NewConflict("重复创建"), CodeConflict},
		{NewIntegrity("完整性违规"), CodeIntegrity},
	}
	for _, c := range cases {
		if c.err.Code != c.code {
			t.Errorf("expected code %d, got %d", c.code, c.err.Code)
		}
	}
}

func TestErrorPredicatesUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("发放失败: %w", NewConflict("推荐已完成"))
	if !IsConflict(wrapped) {
		t.Error("expected wrapped conflict error to be detected")
	}
	if IsNotFound(wrapped) || IsInvalid(wrapped) || IsIntegrity(wrapped) {
		t.Error("conflict error matched the wrong predicate")
	}
	if IsConflict(errors.New("plain")) {
		t.Error("plain error should not match any predicate")
	}
}
