package piyopiyo

import "testing"

func TestEventKeyDownRoundTrip(t *testing.T) {
	for k := 0; k < NKeys; k++ {
		var e Event
		e.SetKeyDown(k)
		if !e.KeyDown(k) {
			t.Errorf("key %d: expected KeyDown true after SetKeyDown", k)
		}
		e.SetKeyUp(k)
		if e.KeyDown(k) {
			t.Errorf("key %d: expected KeyDown false after SetKeyUp", k)
		}
	}
}

func TestEventFromKeyDownArray(t *testing.T) {
	var a [NKeys]bool
	a[0] = true
	a[5] = true
	a[23] = true
	e := EventFromKeyDownArray(a)
	for k := 0; k < NKeys; k++ {
		if e.KeyDown(k) != a[k] {
			t.Errorf("key %d: expected %v got %v", k, a[k], e.KeyDown(k))
		}
	}
}

func TestEventPanTable(t *testing.T) {
	expected := [8]int16{2560, 1600, 760, 320, 0, -320, -760, -1640}
	for i := 1; i <= 8; i++ {
		e := Event(uint32(i) << 24)
		pan, ok := e.Pan()
		if !ok {
			t.Fatalf("index %d: expected ok", i)
		}
		if pan != expected[i%8] {
			t.Errorf("index %d: expected pan %d, got %d", i, expected[i%8], pan)
		}
	}
}

func TestEventPanZeroIsNoChange(t *testing.T) {
	e := Event(0x00123456)
	if _, ok := e.Pan(); ok {
		t.Errorf("expected no pan change for a zero pan byte")
	}
}

func TestEventPanOutOfRangeMasksToLowThreeBits(t *testing.T) {
	// Byte value 9 should behave like byte value 1 (9 & 7 == 1).
	e := Event(uint32(9) << 24)
	pan, ok := e.Pan()
	if !ok || pan != 1600 {
		t.Errorf("expected masked pan 1600, got %d ok=%v", pan, ok)
	}
}
