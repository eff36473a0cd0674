package idgen

import (
	"fmt"
	"strings"
	"testing"
	"unicode"
)

// 基础测试：前缀取自标签首字母
func TestGenerate_Prefix(t *testing.T) {
	id := Generate("Blue Bottle Coffee", map[string]struct{}{})
	if !strings.HasPrefix(id, "BBC") {
		t.Fatalf("expected prefix BBC, got %s", id)
	}
}

// 空标签也要能生成合法短码
func TestGenerate_EmptySeed(t *testing.T) {
	id := Generate("", map[string]struct{}{})
	if len(id) < prefixLen+1 {
		t.Fatalf("id too short: %q", id)
	}
	for _, r := range id[:prefixLen] {
		if !unicode.IsUpper(r) {
			t.Fatalf("prefix not uppercase letters: %q", id)
		}
	}
}

// 唯一性测试：1 万次生成不得命中已用集合
func TestGenerate_NeverCollides(t *testing.T) {
	existing := make(map[string]struct{})

	for i := 0; i < 10000; i++ {
		id := Generate("Acme Market", existing)
		if _, used := existing[id]; used {
			t.Fatalf("generated id already in use: %s", id)
		}
		existing[id] = struct{}{}
	}
}

// 对抗性测试：把种子前缀的整个后缀空间占满，逼出随机前缀/时间戳兜底
func TestGenerate_AdversarialPrefix(t *testing.T) {
	existing := make(map[string]struct{})
	for i := 0; i < 10000; i++ {
		existing[Generate("Acme Market", existing)] = struct{}{}
	}
	// 种子前缀 + 所有 4 位后缀全部占用
	for i := 0; i < 10000; i++ {
		existing[fmt.Sprintf("AMA%04d", i)] = struct{}{}
	}

	for i := 0; i < 10000; i++ {
		id := Generate("Acme Market", existing)
		if _, used := existing[id]; used {
			t.Fatalf("collision under adversarial prefix load: %s", id)
		}
		existing[id] = struct{}{}
	}
}
