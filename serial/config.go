package serial

// Parity selects the per-byte parity scheme applied to the line.
type Parity int

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

func (p Parity) String() string {
	switch p {
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	default:
		return "none"
	}
}

// FlowControl selects how the line paces transmission.
type FlowControl int

const (
	FlowNone FlowControl = iota
	FlowRTSCTS
	FlowXonXoff
)

func (f FlowControl) String() string {
	switch f {
	case FlowRTSCTS:
		return "rts/cts"
	case FlowXonXoff:
		return "xon/xoff"
	default:
		return "none"
	}
}

// Config is the platform-neutral serial line configuration a Port is
// configured with. It is pure data, copied by value.
type Config struct {
	BaudRate       uint32
	DataBits       uint8 // 5-8
	StopBits       uint8 // 1 or 2
	Parity         Parity
	FlowControl    FlowControl
	RXBufferSize   uint32
	TXBufferSize   uint32
	ReadTimeoutMS  uint32
	WriteTimeoutMS uint32
}

// DefaultConfig returns a commonly useful 115200-8-N-1 configuration
// with 8 KiB rings and a 100ms read timeout.
func DefaultConfig() Config {
	return Config{
		BaudRate:       115200,
		DataBits:       8,
		StopBits:       1,
		Parity:         ParityNone,
		FlowControl:    FlowNone,
		RXBufferSize:   8192,
		TXBufferSize:   8192,
		ReadTimeoutMS:  100,
		WriteTimeoutMS: 100,
	}
}
