package utils

// Metric carries latency samples from the request path to the
// collectors in src-server/metric. Channels are buffered and senders
// drop on a full buffer, so an idle collector never stalls a request.
type Metric struct {
	HTTPRequest chan float64
	Expansion   chan float64
}

func NewMetric() *Metric {
	return &Metric{
		HTTPRequest: make(chan float64, 16),
		Expansion:   make(chan float64, 16),
	}
}

// Send delivers one sample without blocking.
func Send(ch chan float64, value float64) {
	select {
	case ch <- value:
	default:
	}
}
