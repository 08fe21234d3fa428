package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Pixels          int           // Pixels written
	PrimaryRays     int           // Camera rays traced
	SecondaryRays   int           // Reflection and refraction rays traced
	ShadowRays      int           // Visibility rays cast toward lights
	MaxDepthReached int           // Deepest recursion level shaded
	Duration        time.Duration // Wall time of the render
}

// Merge adds the counters of other into s
func (s *RenderStats) Merge(other RenderStats) {
	s.Pixels += other.Pixels
	s.PrimaryRays += other.PrimaryRays
	s.SecondaryRays += other.SecondaryRays
	s.ShadowRays += other.ShadowRays
	s.MaxDepthReached = max(s.MaxDepthReached, other.MaxDepthReached)
}

// RaysPerPixel returns the average number of rays of any kind per pixel
func (s RenderStats) RaysPerPixel() float64 {
	if s.Pixels == 0 {
		return 0
	}
	return float64(s.PrimaryRays+s.SecondaryRays+s.ShadowRays) / float64(s.Pixels)
}
