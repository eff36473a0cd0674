package service

import (
	"Loyo/models"
	"Loyo/pkg/response"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestOrNotFound(t *testing.T) {
	err := orNotFound(gorm.ErrRecordNotFound, "商家不存在")
	if !response.IsNotFound(err) {
		t.Errorf("record-not-found should map to 40401, got %v", err)
	}

	passthrough := errors.New("connection refused")
	if got := orNotFound(passthrough, "商家不存在"); !errors.Is(got, passthrough) {
		t.Errorf("other errors must pass through unchanged, got %v", got)
	}
}

func TestGeneralClassID(t *testing.T) {
	classes := []models.CustomerClass{
		classFixture("REF0001", models.ClassNameReferral, models.ClassTypePermanent, true),
		classFixture("VIP0001", "VIP", models.ClassTypeCustom, true),
		classFixture("GEN0001", models.ClassNameGeneral, models.ClassTypePermanent, true),
	}
	if got := generalClassID(classes); got != "GEN0001" {
		t.Errorf("generalClassID = %q, want GEN0001", got)
	}

	// 同名自建等级不能顶替永久等级
	impostor := []models.CustomerClass{
		classFixture("FAKE001", models.ClassNameGeneral, models.ClassTypeCustom, true),
	}
	if got := generalClassID(impostor); got != "" {
		t.Errorf("custom class named General must not match, got %q", got)
	}

	inactive := []models.CustomerClass{
		classFixture("GEN0001", models.ClassNameGeneral, models.ClassTypePermanent, false),
	}
	if got := generalClassID(inactive); got != "" {
		t.Errorf("inactive General must not match, got %q", got)
	}
}
