// Package piyopiyo implements the playback and synthesis core for Pixel's
// "Piyo Piyo" (PMD) chiptune format, the music format used by Cave Story.
//
// Construct a Player from a PMD byte blob with NewPlayer, then call
// RenderNext repeatedly to fill a caller-owned []int16 buffer with
// interleaved stereo samples at the sample rate chosen at construction
// time. Player.Song is exported so a host editor can mutate waveforms,
// envelopes, and event data between render calls.
package piyopiyo
