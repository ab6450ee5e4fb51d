package typelore

import (
	"testing"
	"time"
)

func TestLoginLimiterBlocksAfterMax(t *testing.T) {
	l := NewLoginLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("fourth attempt should be blocked")
	}
}

func TestLoginLimiterResetsAfterWindow(t *testing.T) {
	l := NewLoginLimiter(1, 20*time.Millisecond)
	if !l.Allow("1.2.3.4") {
		t.Fatal("first attempt should be allowed")
	}
	if l.Allow("1.2.3.4") {
		t.Error("second attempt within window should be blocked")
	}
	time.Sleep(30 * time.Millisecond)
	if !l.Allow("1.2.3.4") {
		t.Error("attempt after window should be allowed")
	}
}

func TestLoginLimiterIsPerIP(t *testing.T) {
	l := NewLoginLimiter(1, time.Minute)
	if !l.Allow("1.1.1.1") {
		t.Fatal("first IP should be allowed")
	}
	if !l.Allow("2.2.2.2") {
		t.Error("second IP should not share the first IP's budget")
	}
}

func TestLoginLimiterCheckDoesNotRecord(t *testing.T) {
	l := NewLoginLimiter(1, time.Minute)
	for i := 0; i < 5; i++ {
		if !l.Check("1.2.3.4") {
			t.Fatal("Check alone should never consume the budget")
		}
	}
	l.Record("1.2.3.4")
	if l.Check("1.2.3.4") {
		t.Error("after Record the budget should be spent")
	}
}
