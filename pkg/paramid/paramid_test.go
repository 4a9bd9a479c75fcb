package paramid

import (
	"testing"
)

func TestFamilies(t *testing.T) {
	if AverageTargetPitch(0) != 1000 || MergeWeight(255) != 2255 || MergeLabel(7) != 3007 {
		t.Error("family ids are wrong")
	}

	i, ok := Index(MergeWeightBase, MergeWeight(42))
	if !ok || i != 42 {
		t.Errorf("Expected 42, got %d (%v)", i, ok)
	}
	if _, ok := Index(MergeWeightBase, MergeLabel(0)); ok {
		t.Error("Expected label id outside the weight family")
	}
	if _, ok := Index(AverageTargetPitchBase, Lock); ok {
		t.Error("Expected singular id outside the family")
	}
}

func TestFamilyIndexOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for index 256")
		}
	}()
	MergeWeight(MaxVoices)
}
