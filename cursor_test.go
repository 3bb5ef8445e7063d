package piyopiyo

import "testing"

func TestCursorNextBytesUnderflow(t *testing.T) {
	c := newCursor([]byte{1, 2, 3})
	if _, ok := c.nextBytes(4); ok {
		t.Errorf("expected underflow reading 4 bytes from a 3-byte cursor")
	}
}

func TestCursorNextU32LE(t *testing.T) {
	c := newCursor([]byte{0x01, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff})
	v, ok := c.nextU32LE()
	if !ok || v != 1 {
		t.Fatalf("expected 1, got %d ok=%v", v, ok)
	}
	v, ok = c.nextU32LE()
	if !ok || v != 0xffffffff {
		t.Fatalf("expected 0xffffffff, got %x ok=%v", v, ok)
	}
	if _, ok = c.nextU8(); ok {
		t.Errorf("expected underflow at end of buffer")
	}
}

func TestCursorSkipPastEnd(t *testing.T) {
	c := newCursor([]byte{1, 2, 3})
	c.skip(10)
	if _, ok := c.nextU8(); ok {
		t.Errorf("expected underflow after skipping past the end")
	}
}

func TestCursorNextEvents(t *testing.T) {
	c := newCursor([]byte{
		0x01, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x01,
	})
	events, ok := c.nextEvents(2)
	if !ok {
		t.Fatal("expected ok")
	}
	if events[0] != 1 {
		t.Errorf("expected first event 1, got %d", events[0])
	}
	if events[1] != Event(0x01000000) {
		t.Errorf("expected second event 0x01000000, got %x", uint32(events[1]))
	}
}

func TestCursorNextEventsUnderflow(t *testing.T) {
	c := newCursor([]byte{1, 2, 3})
	if _, ok := c.nextEvents(1); ok {
		t.Errorf("expected underflow reading one event from 3 bytes")
	}
}
