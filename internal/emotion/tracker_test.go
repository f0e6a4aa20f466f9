package emotion

import (
	"math"
	"strings"
	"sync"
	"testing"
	"time"
)

// longPad pushes a message over the short-message threshold without adding
// emotional cues. Ends with a period so the question rule stays quiet.
const longPad = "and the estate calendar shows open weekends through the autumn season for your party size here."

func TestUpdate_UnhelpfulCues(t *testing.T) {
	tr := NewTracker()
	msg := "I don't know, I cannot help with that and I'm not sure either. " +
		strings.Repeat("more words to pad the message out well past twenty ", 2) + longPad

	st := tr.Update(msg, "")
	if st.Current != Frustrated {
		t.Errorf("emotion = %q, want frustrated", st.Current)
	}
	// 3 unhelpful cues: 0.5 + 0.3 = 0.8
	if math.Abs(st.Intensity-0.8) > 0.001 {
		t.Errorf("intensity = %f, want 0.8", st.Intensity)
	}
}

func TestUpdate_HelpfulCues(t *testing.T) {
	tr := NewTracker()
	msg := "Let me help with that, great question, and of course we can walk through it together. " + longPad

	st := tr.Update(msg, "")
	if st.Current != Hopeful {
		t.Errorf("emotion = %q, want hopeful", st.Current)
	}
	if math.Abs(st.Intensity-0.8) > 0.001 {
		t.Errorf("intensity = %f, want 0.8", st.Intensity)
	}
}

func TestUpdate_NeutralWhenBalanced(t *testing.T) {
	tr := NewTracker()
	msg := "I'm not sure about the caterer but of course we can ask the kitchen team directly this week. " + longPad

	st := tr.Update(msg, "")
	if st.Current != Neutral {
		t.Errorf("emotion = %q, want neutral", st.Current)
	}
	if math.Abs(st.Intensity-0.5) > 0.001 {
		t.Errorf("intensity = %f, want 0.5", st.Intensity)
	}
}

func TestUpdate_ShortMessageOverride(t *testing.T) {
	tr := NewTracker()
	st := tr.Update("Sure.", "")
	if st.Current != Annoyed {
		t.Errorf("emotion = %q, want annoyed", st.Current)
	}
	// neutral base 0.5 + 0.2 short-message bump
	if math.Abs(st.Intensity-0.7) > 0.001 {
		t.Errorf("intensity = %f, want 0.7", st.Intensity)
	}
}

func TestUpdate_UnansweredQuestionsOverride(t *testing.T) {
	tr := NewTracker()
	prev := "What does the package include? Is there a rain plan? Can we bring our own wine?"
	msg := "We have several wonderful options available for you. " + longPad // two sentences < three questions

	st := tr.Update(msg, prev)
	if st.Current != Frustrated {
		t.Errorf("emotion = %q, want frustrated", st.Current)
	}
	// neutral base 0.5 + 0.3 question bump
	if math.Abs(st.Intensity-0.8) > 0.001 {
		t.Errorf("intensity = %f, want 0.8", st.Intensity)
	}
}

func TestUpdate_IntensityClamped(t *testing.T) {
	tr := NewTracker()
	// Short message with many unhelpful cues plus unanswered questions:
	// every increment applies, result must still be <= 1.
	prev := "Why? How? When? Where? Who?"
	st := tr.Update("i don't know, cannot help, not sure", prev)
	if st.Intensity > 1.0 || st.Intensity < 0.0 {
		t.Errorf("intensity = %f, out of [0,1]", st.Intensity)
	}
	if st.Current != Frustrated {
		t.Errorf("emotion = %q, want frustrated", st.Current)
	}
}

func TestOverride(t *testing.T) {
	tr := NewTracker()
	st, err := tr.Override(Concerned, 0.65, "trainer adjustment")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Current != Concerned || math.Abs(st.Intensity-0.65) > 0.001 {
		t.Errorf("state = %q/%f, want concerned/0.65", st.Current, st.Intensity)
	}
	last := st.Journal[len(st.Journal)-1]
	if last.Reason != "trainer adjustment" {
		t.Errorf("journal reason = %q", last.Reason)
	}
}

func TestOverride_RejectsUnknownEmotion(t *testing.T) {
	tr := NewTracker()
	if _, err := tr.Override("melancholic", 0.5, "x"); err == nil {
		t.Fatal("expected error for emotion outside the vocabulary")
	}
}

func TestOverride_ClampsIntensity(t *testing.T) {
	tr := NewTracker()
	st, err := tr.Override(Angry, 1.7, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Intensity != 1.0 {
		t.Errorf("intensity = %f, want clamped to 1.0", st.Intensity)
	}
}

func TestJournalGrowsPerUpdate(t *testing.T) {
	tr := NewTracker()
	tr.Update("Sure.", "")
	tr.Update("Fine.", "")
	st := tr.State()
	// seed entry + two updates
	if len(st.Journal) != 3 {
		t.Errorf("journal length = %d, want 3", len(st.Journal))
	}
	if st.Journal[len(st.Journal)-1].Emotion != st.Current {
		t.Error("current emotion does not reflect the latest journal entry")
	}
}

func TestReset(t *testing.T) {
	tr := NewTracker()
	tr.Update("Sure.", "")
	tr.Reset()
	st := tr.State()
	if st.Current != Neutral || len(st.Journal) != 1 {
		t.Errorf("after reset: %q with %d journal entries", st.Current, len(st.Journal))
	}
}

func TestWatchdog_Fires(t *testing.T) {
	var mu sync.Mutex
	fired := 0
	w := NewWatchdog(10*time.Millisecond, func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})
	w.Reset()

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if fired != 1 {
		t.Errorf("watchdog fired %d times, want 1", fired)
	}
}

func TestWatchdog_ResetDefersFiring(t *testing.T) {
	var mu sync.Mutex
	fired := 0
	w := NewWatchdog(40*time.Millisecond, func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})
	w.Reset()
	time.Sleep(20 * time.Millisecond)
	w.Reset() // trainee spoke; patience restored
	time.Sleep(25 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if fired != 0 {
		t.Errorf("watchdog fired %d times before the full interval elapsed", fired)
	}
}

func TestWatchdog_StopPreventsFiring(t *testing.T) {
	var mu sync.Mutex
	fired := 0
	w := NewWatchdog(10*time.Millisecond, func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})
	w.Reset()
	w.Stop()

	time.Sleep(40 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if fired != 0 {
		t.Errorf("watchdog fired %d times after Stop", fired)
	}
}
