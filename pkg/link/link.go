package link

import (
	"errors"
	"net/url"

	"github.com/speps/go-hashids/v2"
)

// 报名链接参数名
const (
	paramBusiness = "b"
	paramClass    = "c"
	paramReferrer = "ref"
)

// SignupURL 拼接报名链接：<origin>/signup?b=<businessId>&c=<classId>&ref=<referrerId>
// 页面渲染由外部系统负责，这里只负责构造和解析。
func SignupURL(origin, businessID, classID, referrerID string) string {
	q := url.Values{}
	q.Set(paramBusiness, businessID)
	q.Set(paramClass, classID)
	if referrerID != "" {
		q.Set(paramReferrer, referrerID)
	}
	return origin + "/signup?" + q.Encode()
}

// ParseSignupURL 解析报名链接，businessID 和 classID 缺一不可
func ParseSignupURL(raw string) (businessID, classID, referrerID string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", "", err
	}

	q := u.Query()
	businessID = q.Get(paramBusiness)
	classID = q.Get(paramClass)
	referrerID = q.Get(paramReferrer)

	if businessID == "" || classID == "" {
		return "", "", "", errors.New("报名链接缺少必要参数")
	}
	return businessID, classID, referrerID, nil
}

// ShareCode 用 hashids 把内部链接ID编成短分享码
func ShareCode(salt string, id int64) string {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 8
	h, _ := hashids.NewWithData(hd)
	e, _ := h.EncodeInt64([]int64{id})
	return e
}
