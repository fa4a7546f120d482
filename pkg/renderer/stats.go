package renderer

// RenderStats summarizes a completed render: how many pixels were
// produced, how many path samples were taken in total, and how long it
// took, for the top-level driver to report.
type RenderStats struct {
	Width, Height      int
	SqrtSPP            int
	TotalSamples       int64
	ElapsedNanoseconds int64
}

// SamplesPerPixel returns SqrtSPP^2, the number of path samples each pixel
// accumulates.
func (s RenderStats) SamplesPerPixel() int {
	return s.SqrtSPP * s.SqrtSPP
}
