package window

// WindowEvent carries the keypad state sampled by the frontend: bit n is
// set iff hex key n is held down.
type WindowEvent struct {
	Keys uint16
}

type Window interface {
	DrawLine(ly int, scanline []uint8) error
	EnqueueAudioBuffer(buf []float32) error
}
