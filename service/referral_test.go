package service

import (
	"Loyo/models"
	"testing"
)

func classFixture(id, name string, classType models.ClassType, active bool) models.CustomerClass {
	return models.CustomerClass{
		ID:         id,
		BusinessID: "BIZ0001",
		Name:       name,
		Type:       classType,
		Active:     active,
	}
}

func TestResolveRoutingReferralClass(t *testing.T) {
	classes := []models.CustomerClass{
		classFixture("GEN0001", models.ClassNameGeneral, models.ClassTypePermanent, true),
		classFixture("REF0001", models.ClassNameReferral, models.ClassTypePermanent, true),
		classFixture("VIP0001", "VIP", models.ClassTypeCustom, true),
	}
	settings := models.BusinessSettings{DefaultReferralRouting: models.RoutingReferralClass}

	classID, routing := resolveRouting(settings, classes, "VIP0001")
	if classID != "REF0001" {
		t.Errorf("expected referral class REF0001, got %s", classID)
	}
	if routing != models.RoutingReferralClass {
		t.Errorf("expected routing referral_class, got %s", routing)
	}
}

func TestResolveRoutingReferrerClass(t *testing.T) {
	classes := []models.CustomerClass{
		classFixture("GEN0001", models.ClassNameGeneral, models.ClassTypePermanent, true),
		classFixture("REF0001", models.ClassNameReferral, models.ClassTypePermanent, true),
	}
	settings := models.BusinessSettings{DefaultReferralRouting: models.RoutingReferrerClass}

	classID, routing := resolveRouting(settings, classes, "VIP0001")
	if classID != "VIP0001" || routing != models.RoutingReferrerClass {
		t.Errorf("expected (VIP0001, referrer_class), got (%s, %s)", classID, routing)
	}

	// 推荐人等级未知时退回 referral_class
	classID, routing = resolveRouting(settings, classes, "")
	if classID != "REF0001" || routing != models.RoutingReferralClass {
		t.Errorf("expected fallback (REF0001, referral_class), got (%s, %s)", classID, routing)
	}
}

func TestResolveRoutingCustom(t *testing.T) {
	classes := []models.CustomerClass{
		classFixture("GEN0001", models.ClassNameGeneral, models.ClassTypePermanent, true),
		classFixture("REF0001", models.ClassNameReferral, models.ClassTypePermanent, true),
		classFixture("VIP0001", "VIP", models.ClassTypeCustom, true),
	}
	settings := models.BusinessSettings{
		DefaultReferralRouting: models.RoutingCustom,
		CustomReferralClassID:  "VIP0001",
	}

	classID, routing := resolveRouting(settings, classes, "")
	if classID != "VIP0001" || routing != models.RoutingCustom {
		t.Errorf("expected (VIP0001, custom), got (%s, %s)", classID, routing)
	}
}

func TestResolveRoutingCustomClassGone(t *testing.T) {
	// 自定义等级被停用后按 referral_class 兜底
	classes := []models.CustomerClass{
		classFixture("GEN0001", models.ClassNameGeneral, models.ClassTypePermanent, true),
		classFixture("REF0001", models.ClassNameReferral, models.ClassTypePermanent, true),
		classFixture("VIP0001", "VIP", models.ClassTypeCustom, false),
	}
	settings := models.BusinessSettings{
		DefaultReferralRouting: models.RoutingCustom,
		CustomReferralClassID:  "VIP0001",
	}

	classID, routing := resolveRouting(settings, classes, "")
	if classID != "REF0001" || routing != models.RoutingReferralClass {
		t.Errorf("expected fallback (REF0001, referral_class), got (%s, %s)", classID, routing)
	}
}

func TestResolveRoutingDegradedBusiness(t *testing.T) {
	// 推荐永久等级不可用时落到推荐人等级，再落到 General
	classes := []models.CustomerClass{
		classFixture("GEN0001", models.ClassNameGeneral, models.ClassTypePermanent, true),
		classFixture("REF0001", models.ClassNameReferral, models.ClassTypePermanent, false),
	}
	settings := models.BusinessSettings{DefaultReferralRouting: models.RoutingReferralClass}

	classID, _ := resolveRouting(settings, classes, "VIP0001")
	if classID != "VIP0001" {
		t.Errorf("expected referrer class fallback VIP0001, got %s", classID)
	}

	classID, _ = resolveRouting(settings, classes, "")
	if classID != "GEN0001" {
		t.Errorf("expected General fallback GEN0001, got %s", classID)
	}
}

func TestReferralStatusTransitions(t *testing.T) {
	cases := []struct {
		from models.ReferralStatus
		to   models.ReferralStatus
		ok   bool
	}{
		{models.ReferralPending, models.ReferralCompleted, true},
		{models.ReferralPending, models.ReferralFailed, true},
		{models.ReferralCompleted, models.ReferralFailed, false},
		{models.ReferralCompleted, models.ReferralPending, false},
		{models.ReferralFailed, models.ReferralCompleted, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.ok {
			t.Errorf("%s -> %s: expected %v, got %v", c.from, c.to, c.ok, got)
		}
	}
}
