package scoring

import "testing"

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestScoreFastConfidentCorrect(t *testing.T) {
	// 80 + 10 (confidence 1.0) + 5 (under 10s) = 95
	got := Score(true, intPtr(5), floatPtr(1.0))
	if got != 95.0 {
		t.Fatalf("want 95.0, got %v", got)
	}
}

func TestScoreSlowUnconfidentCorrect(t *testing.T) {
	// 80 - 10 (confidence 0.0) - 10 (over 30s) = 60
	got := Score(true, intPtr(40), floatPtr(0.0))
	if got != 60.0 {
		t.Fatalf("want 60.0, got %v", got)
	}
}

func TestScoreIncorrectIgnoresTiming(t *testing.T) {
	// Confidence 0.5 contributes nothing and time rules only apply when correct.
	got := Score(false, intPtr(5), floatPtr(0.5))
	if got != 20.0 {
		t.Fatalf("want 20.0, got %v", got)
	}
}

func TestScoreExactThresholdsApplyNoAdjustment(t *testing.T) {
	if got := Score(true, intPtr(30), nil); got != 80.0 {
		t.Fatalf("time=30s must not adjust, got %v", got)
	}
	if got := Score(true, intPtr(10), nil); got != 80.0 {
		t.Fatalf("time=10s must not adjust, got %v", got)
	}
}

func TestScoreMissingOptionalsUsesBaseOnly(t *testing.T) {
	if got := Score(true, nil, nil); got != 80.0 {
		t.Fatalf("want 80.0, got %v", got)
	}
	if got := Score(false, nil, nil); got != 20.0 {
		t.Fatalf("want 20.0, got %v", got)
	}
}

func TestScoreAlwaysInBounds(t *testing.T) {
	times := []*int{nil, intPtr(0), intPtr(9), intPtr(10), intPtr(30), intPtr(31), intPtr(600)}
	confidences := []*float64{nil, floatPtr(0), floatPtr(0.25), floatPtr(0.5), floatPtr(0.75), floatPtr(1)}
	for _, correct := range []bool{true, false} {
		for _, st := range times {
			for _, c := range confidences {
				got := Score(correct, st, c)
				if got < 0 || got > 100 {
					t.Fatalf("score %v out of [0,100] for correct=%v", got, correct)
				}
			}
		}
	}
}

func TestApplyOfflineConvergesToBounds(t *testing.T) {
	score := OfflineBase
	for i := 0; i < 50; i++ {
		score = ApplyOffline(score, true)
		if score > 100 {
			t.Fatalf("repeated correct answers exceeded 100: %v", score)
		}
	}
	if score != 100 {
		t.Fatalf("expected saturation at 100, got %v", score)
	}

	score = OfflineBase
	for i := 0; i < 50; i++ {
		score = ApplyOffline(score, false)
		if score < 0 {
			t.Fatalf("repeated incorrect answers dropped below 0: %v", score)
		}
	}
	if score != 0 {
		t.Fatalf("expected saturation at 0, got %v", score)
	}
}

func TestApplyOfflineDeltas(t *testing.T) {
	if got := ApplyOffline(OfflineBase, true); got != 55.0 {
		t.Fatalf("want 55.0, got %v", got)
	}
	if got := ApplyOffline(OfflineBase, false); got != 48.0 {
		t.Fatalf("want 48.0, got %v", got)
	}
}

func TestApplyOnlineReplaces(t *testing.T) {
	if got := ApplyOnline(12.0, 95.0); got != 95.0 {
		t.Fatalf("want 95.0, got %v", got)
	}
	if got := ApplyOnline(90.0, 20.0); got != 20.0 {
		t.Fatalf("want 20.0, got %v", got)
	}
}
