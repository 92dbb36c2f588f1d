package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Strategy     Strategy
	TotalPixels  int           // Pixels written to the framebuffer
	TotalSamples int           // Camera rays traced
	Duration     time.Duration // Wall time of the render
	Workers      []WorkerStats // One entry per worker, indexed by worker ID
}

// WorkerStats tracks what a single worker contributed
type WorkerStats struct {
	ID      int
	Pixels  int
	Samples int
	Busy    time.Duration // Time spent tracing, excluding waits for work
}

// SamplesPerSecond returns the camera ray throughput of the whole render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// addPixel records one finished pixel for a worker
func (ws *WorkerStats) addPixel(samples int, busy time.Duration) {
	ws.Pixels++
	ws.Samples += samples
	ws.Busy += busy
}
