package config

import "testing"

func TestVIPDefaults(t *testing.T) {
	v := &VIP{}
	if got := v.ConsumptionPerPointOrDefault(); got != 3 {
		t.Errorf("ConsumptionPerPoint 默认值 = %v, want 3", got)
	}
	if got := v.CheckinPointsOrDefault(); got != 10 {
		t.Errorf("CheckinPoints 默认值 = %d, want 10", got)
	}
	if got := v.GoldThresholdOrDefault(); got != 500 {
		t.Errorf("GoldThreshold 默认值 = %d, want 500", got)
	}
	if got := v.BlackThresholdOrDefault(); got != 1750 {
		t.Errorf("BlackThreshold 默认值 = %d, want 1750", got)
	}
}

func TestVIPOverride(t *testing.T) {
	v := &VIP{ConsumptionPerPoint: 1.5, CheckinPoints: 20, GoldThreshold: 1000, BlackThreshold: 3000}
	if v.ConsumptionPerPointOrDefault() != 1.5 || v.CheckinPointsOrDefault() != 20 {
		t.Error("显式配置未生效")
	}
	if v.GoldThresholdOrDefault() != 1000 || v.BlackThresholdOrDefault() != 3000 {
		t.Error("等级门槛配置未生效")
	}
}
