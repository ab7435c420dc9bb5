package preview

import (
	"frontier/pkg/engine/world"
)

// LayerKind tells the renderer how to draw a layer.
type LayerKind int

// Layer kinds
const (
	LayerBackdrop LayerKind = iota
	LayerMap
)

// Layer is one entry of the background stack, drawn bottom to top.
type Layer struct {
	Kind  LayerKind
	Map   *world.Grid
	Scale float64
	Alpha float64

	fade *fade
}

// Fading reports whether the layer is still fading in.
func (l *Layer) Fading() bool {
	return l.fade != nil
}

type fade struct {
	duration float64
	elapsed  float64
	then     func()
}

// Stack holds the background layers of a screen. It is used from the
// interactive thread only.
type Stack struct {
	layers []*Layer
}

// NewStack creates a stack with a static backdrop at the bottom.
func NewStack() *Stack {
	return &Stack{layers: []*Layer{{Kind: LayerBackdrop, Alpha: 1, Scale: 1}}}
}

// Layers returns the layers bottom to top.
func (s *Stack) Layers() []*Layer {
	return s.layers
}

// MapLayers returns the map layers bottom to top.
func (s *Stack) MapLayers() []*Layer {
	var out []*Layer
	for _, l := range s.layers {
		if l.Kind == LayerMap {
			out = append(out, l)
		}
	}
	return out
}

// AddMap puts a transparent map layer on top of the stack.
func (s *Stack) AddMap(grid *world.Grid, scale float64) *Layer {
	l := &Layer{Kind: LayerMap, Map: grid, Scale: scale}
	s.layers = append(s.layers, l)
	return l
}

// FadeIn raises l's alpha to 1 over duration seconds, then calls then if non-nil.
func (s *Stack) FadeIn(l *Layer, duration float64, then func()) {
	if duration <= 0 {
		l.Alpha = 1
		if then != nil {
			then()
		}
		return
	}
	l.fade = &fade{duration: duration, then: then}
}

// RemoveOldestMap drops the lowest map layer.
func (s *Stack) RemoveOldestMap() {
	for i, l := range s.layers {
		if l.Kind == LayerMap {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			return
		}
	}
}

// Update advances fades by dt seconds. Completion callbacks run after every
// layer has been advanced.
func (s *Stack) Update(dt float64) {
	var done []func()
	for _, l := range s.layers {
		if l.fade == nil {
			continue
		}
		f := l.fade
		f.elapsed += dt
		l.Alpha = min(f.elapsed/f.duration, 1)
		if f.elapsed >= f.duration {
			l.fade = nil
			if f.then != nil {
				done = append(done, f.then)
			}
		}
	}
	for _, fn := range done {
		fn()
	}
}
