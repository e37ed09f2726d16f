// Package anim sequences decoded frames for playback on the matrix.
package anim

import (
	"time"

	"github.com/32bitkid/pixelbox/codec"
)

type Frame struct {
	Pixels *codec.PixelBuffer
	Delay  time.Duration
	X, Y   int
}

// Animation cycles through its frames in order, wrapping at the end.
type Animation struct {
	Frames []Frame
	index  int
}

// FromFrames builds an animation from decoded frames. A lone frame is kept
// as a still image; in a longer sequence frames without timing are dropped.
func FromFrames(frames []codec.Frame) *Animation {
	a := &Animation{}
	for _, f := range frames {
		if len(frames) > 1 && !f.Timed {
			continue
		}
		a.Add(Frame{Pixels: f.Pixels, Delay: f.Delay, X: f.Left, Y: f.Top})
	}
	return a
}

func (a *Animation) Add(f Frame) {
	a.Frames = append(a.Frames, f)
}

func (a *Animation) Len() int { return len(a.Frames) }

// Static reports whether there is nothing to animate.
func (a *Animation) Static() bool { return len(a.Frames) <= 1 }

// Next returns the current frame and advances, looping back to the first
// frame after the last.
func (a *Animation) Next() (Frame, bool) {
	if len(a.Frames) == 0 {
		return Frame{}, false
	}
	if a.index >= len(a.Frames) {
		a.index = 0
	}
	f := a.Frames[a.index]
	a.index++
	return f, true
}

func (a *Animation) Reset() { a.index = 0 }

// Duration is the time one pass over every frame takes.
func (a *Animation) Duration() time.Duration {
	var total time.Duration
	for _, f := range a.Frames {
		total += f.Delay
	}
	return total
}
