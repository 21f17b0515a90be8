package service

import (
	"testing"

	"Encore/models"
)

func TestTierFor(t *testing.T) {
	cases := []struct {
		lifetime int64
		want     string
	}{
		{0, models.TierSilver},
		{499, models.TierSilver},
		{500, models.TierGold},
		{501, models.TierGold},
		{1749, models.TierGold},
		{1750, models.TierBlack},
		{999999, models.TierBlack},
	}
	for _, c := range cases {
		got := tierFor(c.lifetime, 500, 1750)
		if got != c.want {
			t.Errorf("tierFor(%d) = %s, want %s", c.lifetime, got, c.want)
		}
	}
}

// 495 累计再签到 +10 应跨过金卡门槛
func TestTierForPromotionBoundary(t *testing.T) {
	before := tierFor(495, 500, 1750)
	after := tierFor(495+10, 500, 1750)
	if before != models.TierSilver || after != models.TierGold {
		t.Errorf("495 -> 505 应从 %s 升到 %s，实际 %s -> %s", models.TierSilver, models.TierGold, before, after)
	}
}

// 等级对累计积分单调不减
func TestTierForMonotonic(t *testing.T) {
	rank := map[string]int{models.TierSilver: 0, models.TierGold: 1, models.TierBlack: 2}
	prev := 0
	for lifetime := int64(0); lifetime <= 2000; lifetime += 5 {
		cur := rank[tierFor(lifetime, 500, 1750)]
		if cur < prev {
			t.Fatalf("lifetime=%d 时等级回落", lifetime)
		}
		prev = cur
	}
}
