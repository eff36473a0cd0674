package link

import "testing"

func TestSignupURL_RoundTrip(t *testing.T) {
	u := SignupURL("https://join.loyo.cn", "ACM4821", "GEN1001", "CUS9527")

	b, c, ref, err := ParseSignupURL(u)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if b != "ACM4821" || c != "GEN1001" || ref != "CUS9527" {
		t.Fatalf("round trip mismatch: b=%s c=%s ref=%s", b, c, ref)
	}
}

func TestSignupURL_NoReferrer(t *testing.T) {
	u := SignupURL("https://join.loyo.cn", "ACM4821", "GEN1001", "")

	b, c, ref, err := ParseSignupURL(u)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if b != "ACM4821" || c != "GEN1001" || ref != "" {
		t.Fatalf("unexpected values: b=%s c=%s ref=%s", b, c, ref)
	}
}

func TestParseSignupURL_MissingParams(t *testing.T) {
	if _, _, _, err := ParseSignupURL("https://join.loyo.cn/signup?b=ACM4821"); err == nil {
		t.Fatal("expected error for missing class param")
	}
	if _, _, _, err := ParseSignupURL("https://join.loyo.cn/signup"); err == nil {
		t.Fatal("expected error for missing params")
	}
}

func TestShareCode_Stable(t *testing.T) {
	a := ShareCode("loyo-salt", 42)
	b := ShareCode("loyo-salt", 42)
	if a == "" || a != b {
		t.Fatalf("share code not stable: %q vs %q", a, b)
	}

	if ShareCode("loyo-salt", 43) == a {
		t.Fatal("different ids must not share a code")
	}
	if len(a) < 8 {
		t.Fatalf("code shorter than min length: %q", a)
	}
}
