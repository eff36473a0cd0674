package service

import (
	"Loyo/models"
	"testing"
)

func TestTriggerMetric(t *testing.T) {
	m := &models.Membership{
		TotalPoints:         1200,
		TotalVisits:         15,
		TotalPointsRedeemed: 500,
	}

	if got := triggerMetric(m, models.TriggerPointsThreshold); got != 1200 {
		t.Errorf("points metric: expected 1200, got %d", got)
	}
	if got := triggerMetric(m, models.TriggerVisitCount); got != 15 {
		t.Errorf("visit metric: expected 15, got %d", got)
	}
	// 500 积分 / 10 = 50 元消费额
	if got := triggerMetric(m, models.TriggerSpendAmount); got != 50 {
		t.Errorf("spend metric: expected 50, got %d", got)
	}
	if got := triggerMetric(m, models.TriggerType("unknown")); got != 0 {
		t.Errorf("unknown metric: expected 0, got %d", got)
	}
}

func TestTriggerSatisfied(t *testing.T) {
	m := &models.Membership{TotalPoints: 1000, TotalVisits: 9}

	cases := []struct {
		name    string
		trigger models.MigrationTrigger
		want    bool
	}{
		{"points at threshold", models.MigrationTrigger{TriggerType: models.TriggerPointsThreshold, ThresholdValue: 1000}, true},
		{"points above threshold", models.MigrationTrigger{TriggerType: models.TriggerPointsThreshold, ThresholdValue: 999}, true},
		{"points below threshold", models.MigrationTrigger{TriggerType: models.TriggerPointsThreshold, ThresholdValue: 1001}, false},
		{"visits below threshold", models.MigrationTrigger{TriggerType: models.TriggerVisitCount, ThresholdValue: 10}, false},
		{"invalid trigger type", models.MigrationTrigger{TriggerType: "bogus", ThresholdValue: 0}, false},
	}
	for _, c := range cases {
		if got := triggerSatisfied(m, &c.trigger); got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}
