package responsecore

import "testing"

func TestScoreBaselineFloors(t *testing.T) {
	ind := Score("The sky is blue today.", "neutral")
	if ind.Empathy < 0.3 || ind.Professionalism < 0.4 || ind.TherapeuticValue < 0.5 {
		t.Fatalf("scores below documented floors: %+v", ind)
	}
}

func TestScoreEmotionLabelBonus(t *testing.T) {
	withLabel := Score("I understand you feel sadness about this.", "sadness")
	withoutLabel := Score("I understand you feel down about this.", "sadness")
	if withLabel.Empathy <= withoutLabel.Empathy {
		t.Fatalf("expected emotion-label bonus: with=%v without=%v", withLabel.Empathy, withoutLabel.Empathy)
	}
}

func TestScoreQuestionBonus(t *testing.T) {
	withQ := Score("I understand this is difficult.", "")
	withoutQ := Score("I understand this is difficult", "")
	withQMark := Score("I understand this is difficult?", "")
	_ = withQ
	if withQMark.TherapeuticValue <= withoutQ.TherapeuticValue {
		t.Fatalf("expected question-mark bonus: with=%v without=%v", withQMark.TherapeuticValue, withoutQ.TherapeuticValue)
	}
}

func TestScoreClampedToOne(t *testing.T) {
	loaded := "I understand, I feel, I hear, this is valid and difficult, support, listen, care, acknowledge, brave, courage " +
		"explore therapy coping strategies resources professional process together work through " +
		"safe space feelings emotions experience important matter alone support?"
	ind := Score(loaded, "")
	if ind.Empathy > 1 || ind.Professionalism > 1 || ind.TherapeuticValue > 1 {
		t.Fatalf("scores exceed 1.0: %+v", ind)
	}
}
