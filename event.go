package piyopiyo

// NKeys is the number of piano keys a track can have pressed at once.
const NKeys = 24

// panTable holds the 8 signed pan offsets addressed by an Event's pan
// index byte. Index 0 is never looked up - byte value 0 means "no pan
// change" and is handled by Event.Pan before the table is consulted.
var panTable = [8]int16{2560, 1600, 760, 320, 0, -320, -760, -1640}

// Event is a single 32-bit bit-packed per-tick record: bits 0..23 are one
// key-down flag per piano key, bits 24..31 are a pan index byte.
type Event uint32

// KeyDown reports whether key's press bit is set.
func (e Event) KeyDown(key int) bool {
	return e&(1<<uint(key)) != 0
}

// SetKeyDown sets key's press bit.
func (e *Event) SetKeyDown(key int) {
	*e |= 1 << uint(key)
}

// SetKeyUp clears key's press bit.
func (e *Event) SetKeyUp(key int) {
	*e &^= 1 << uint(key)
}

// Pan returns the pan offset carried by this event. A zero pan byte means
// "no pan change on this event" and reports ok=false. The source format
// allows pan bytes up to 255 but the table only has 8 entries; values
// 8..255 are masked to their low 3 bits rather than rejected, since PMD
// files in the wild are not otherwise validated.
func (e Event) Pan() (offset int16, ok bool) {
	b := byte(e >> 24)
	if b == 0 {
		return 0, false
	}
	return panTable[b&7], true
}

// EventFromKeyDownArray builds an Event with no pan change whose key-down
// bits match keys.
func EventFromKeyDownArray(keys [NKeys]bool) Event {
	var e Event
	for k, down := range keys {
		if down {
			e.SetKeyDown(k)
		}
	}
	return e
}
