//go:build !ebiten

package window

// typedef float Float32;
// typedef unsigned char Uint8;
// void OnAudioPlayback(void *userdata, Uint8 *stream, int len);
import "C"
import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/mattn/go-pointer"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/ushitora-anqou/aqchip/constant"
)

// Keyboard layout for the 4x4 hex pad:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   <-   Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
var keymap = map[sdl.Keycode]uint8{
	sdl.K_1: 0x1, sdl.K_2: 0x2, sdl.K_3: 0x3, sdl.K_4: 0xc,
	sdl.K_q: 0x4, sdl.K_w: 0x5, sdl.K_e: 0x6, sdl.K_r: 0xd,
	sdl.K_a: 0x7, sdl.K_s: 0x8, sdl.K_d: 0x9, sdl.K_f: 0xe,
	sdl.K_z: 0xa, sdl.K_x: 0x0, sdl.K_c: 0xb, sdl.K_v: 0xf,
}

func SDLInitialize() error {
	return sdl.Init(sdl.INIT_EVERYTHING)
}

type SDLWindow struct {
	window      *sdl.Window
	renderer    *sdl.Renderer
	texture     *sdl.Texture
	srcPic      [constant.LCD_WIDTH * constant.LCD_HEIGHT]uint8
	prevKeys    uint16
	audioDevice sdl.AudioDeviceID
	audioBuffer [][]C.Float32 // NOTE: Access to this variable must be mutually excluded by sdl.LockAudioDevice(audioDevice).
}

func NewSDLWindow(scale int) (*SDLWindow, error) {
	window, err := sdl.CreateWindow(
		constant.WINDOW_TITLE,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(constant.LCD_WIDTH*scale),
		int32(constant.LCD_HEIGHT*scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return nil, err
	}

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STREAMING,
		constant.LCD_WIDTH,
		constant.LCD_HEIGHT,
	)
	if err != nil {
		return nil, err
	}

	wind := &SDLWindow{
		window:      window,
		renderer:    renderer,
		texture:     texture,
		srcPic:      [constant.LCD_WIDTH * constant.LCD_HEIGHT]uint8{},
		audioBuffer: [][]C.Float32{},
	}

	audioDevice, err := sdl.OpenAudioDevice(
		"",
		false,
		&sdl.AudioSpec{
			Freq:     constant.AUDIO_FREQ,
			Format:   sdl.AUDIO_F32,
			Channels: constant.CHANNELS,
			Samples:  constant.AUDIO_SAMPLES,
			Callback: sdl.AudioCallback(C.OnAudioPlayback),
			UserData: pointer.Save(wind),
		},
		nil,
		0,
	)
	if err != nil {
		return nil, err
	}
	sdl.PauseAudioDevice(audioDevice, false)
	wind.audioDevice = audioDevice

	return wind, nil
}

func (wind *SDLWindow) DrawLine(ly int, scanline []uint8) error {
	if len(scanline) != constant.LCD_WIDTH {
		return fmt.Errorf(
			"Invalid length of scanline data: expected %d, got %d",
			constant.LCD_WIDTH,
			len(scanline),
		)
	}
	copy(wind.srcPic[ly*constant.LCD_WIDTH:(ly+1)*constant.LCD_WIDTH], scanline)
	return nil
}

func (wind *SDLWindow) HandleEvents() (bool, *WindowEvent) {
	we := &WindowEvent{Keys: wind.prevKeys}
	escape := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch event.(type) {
		case *sdl.QuitEvent:
			escape = true

		case *sdl.KeyboardEvent:
			kbEvent := event.(*sdl.KeyboardEvent)
			switch kbEvent.Type {
			case sdl.KEYDOWN:
				if kbEvent.Keysym.Sym == sdl.K_ESCAPE {
					escape = true
				}
				if key, ok := keymap[kbEvent.Keysym.Sym]; ok {
					we.Keys |= (1 << key)
				}

			case sdl.KEYUP:
				if key, ok := keymap[kbEvent.Keysym.Sym]; ok {
					we.Keys &^= (1 << key)
				}
			}
		}
	}

	wind.prevKeys = we.Keys

	return escape, we
}

func (wind *SDLWindow) UpdateScreen() error {
	// Update the texture
	pixels, _, err := wind.texture.Lock(nil)
	if err != nil {
		return err
	}
	for row := 0; row < constant.LCD_HEIGHT; row++ {
		for col := 0; col < constant.LCD_WIDTH; col++ {
			off := row*constant.LCD_WIDTH + col
			var color byte = constant.COLOR_OFF
			if wind.srcPic[off] != 0 {
				color = constant.COLOR_ON
			}
			pixels[off*4+0] = color // b
			pixels[off*4+1] = color // g
			pixels[off*4+2] = color // r
			pixels[off*4+3] = 0xff  // a
		}
	}
	wind.texture.Unlock()

	// Present the scene
	wind.renderer.Clear()
	wind.renderer.Copy(wind.texture, nil, nil)
	wind.renderer.Present()

	return nil
}

func (wind *SDLWindow) EnqueueAudioBuffer(buf []float32) error {
	// Lock the device to avoid data race with OnAudioPlayback.
	sdl.LockAudioDevice(wind.audioDevice)
	defer sdl.UnlockAudioDevice(wind.audioDevice)

	length := constant.AUDIO_SAMPLES * constant.CHANNELS
	if len(buf) != length {
		return fmt.Errorf("Invalid length of audio buffer")
	}

	if len(wind.audioBuffer) >= constant.AUDIO_QUEUE_SIZE {
		wind.popAudioBuffer() // Discard the old one
	}

	bufC := make([]C.Float32, length)
	for i, v := range buf {
		bufC[i] = C.Float32(v)
	}

	// Enqueue
	wind.audioBuffer = append(wind.audioBuffer, bufC)

	return nil
}

// popAudioBuffer assumes that access to wind.audioBuffer is locked beforehand.
func (wind *SDLWindow) popAudioBuffer() []C.Float32 {
	if len(wind.audioBuffer) == 0 {
		return nil
	}

	ret := wind.audioBuffer[0]
	wind.audioBuffer = wind.audioBuffer[1:]
	return ret
}

//export OnAudioPlayback
func OnAudioPlayback(userdata unsafe.Pointer, stream *C.Uint8, length C.int) {
	n := int(length) / 4
	hdr := reflect.SliceHeader{Data: uintptr(unsafe.Pointer(stream)), Len: n, Cap: n}
	buf := *(*[]C.Float32)(unsafe.Pointer(&hdr))
	wind := pointer.Restore(userdata).(*SDLWindow)
	src := wind.popAudioBuffer()

	if src == nil {
		for i := range buf {
			buf[i] = 0
		}
	} else {
		copy(buf, src)
	}
}

type SDLTimeSynchronizer struct {
	prevTicks, usPerFrame int64
}

func NewSDLTimeSynchronizer(targetFPS float64) *SDLTimeSynchronizer {
	return &SDLTimeSynchronizer{
		prevTicks:  int64(sdl.GetTicks()) * 1000,
		usPerFrame: int64(1000000.0 / targetFPS),
	}
}

func (ts *SDLTimeSynchronizer) MaySleep() {
	cur := int64(sdl.GetTicks()) * 1000
	if cur < ts.prevTicks {
		return
	}
	diff := ts.usPerFrame - (cur - ts.prevTicks)
	if diff > 1000 { // Larger than 1ms
		sdl.Delay(uint32(diff / 1000))
	}
	ts.prevTicks += ts.usPerFrame
}
