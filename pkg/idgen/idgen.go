package idgen

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

const (
	prefixLen  = 3  // 短码字母前缀长度
	suffixLen  = 4  // 随机数字后缀位数
	maxRetries = 24 // 超过后退化为时间戳后缀
)

var letters = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// Generate 为商家/等级/客户生成人类可读短码，如 "ACM4821"。
// 保证不会返回 existing 中已有的值；前缀反复撞车时先换随机前缀，
// 重试额度耗尽后退化为时间戳后缀（理论上仍可能碰撞，属于接受的折衷）。
func Generate(seedLabel string, existing map[string]struct{}) string {
	prefix := derivePrefix(seedLabel)

	for i := 0; i < maxRetries; i++ {
		// 前 1/3 次用种子前缀，之后认为该前缀空间太挤，换随机前缀
		p := prefix
		if i >= maxRetries/3 {
			p = randomPrefix()
		}

		candidate := p + randomDigits(suffixLen)
		if _, used := existing[candidate]; !used {
			return candidate
		}
	}

	// 兜底：时间戳后缀，若极小概率仍撞车则继续加一
	candidate := fmt.Sprintf("%s%d", prefix, time.Now().UnixMilli()%100000000)
	for {
		if _, used := existing[candidate]; !used {
			return candidate
		}
		candidate += randomDigits(1)
	}
}

// derivePrefix 取标签每个词的首字母，不足补随机字母
func derivePrefix(seedLabel string) string {
	var b strings.Builder
	for _, word := range strings.Fields(seedLabel) {
		for _, r := range word {
			if unicode.IsLetter(r) && r < 128 {
				b.WriteRune(unicode.ToUpper(r))
			}
			break
		}
		if b.Len() >= prefixLen {
			break
		}
	}

	p := b.String()
	for len(p) < prefixLen {
		p += string(letters[rand.Intn(len(letters))])
	}
	return p[:prefixLen]
}

func randomPrefix() string {
	var b strings.Builder
	for i := 0; i < prefixLen; i++ {
		b.WriteRune(letters[rand.Intn(len(letters))])
	}
	return b.String()
}

func randomDigits(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	return b.String()
}
