package constant

const (
	MEMORY_SIZE   = 0x1000
	PROGRAM_START = 0x200
	FONT_START    = 0x050
	NUM_REGISTERS = 16
	STACK_DEPTH   = 16
	NUM_KEYS      = 16

	LCD_WIDTH  = 64
	LCD_HEIGHT = 32

	DEFAULT_CLOCK_HZ = 700
	TIMER_HZ         = 60

	WINDOW_TITLE = "aqchip"
	COLOR_ON     = 0xff
	COLOR_OFF    = 0x00

	BUZZER_FREQ      = 440
	AUDIO_FREQ       = 44100
	AUDIO_SAMPLES    = 1024
	CHANNELS         = 2
	AUDIO_QUEUE_SIZE = 2
)
