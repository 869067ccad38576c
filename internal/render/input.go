package render

import "github.com/iburimskiy/hero-trails/internal/trails"

// Event is one of PointerMove, TouchMove, TouchStart or Resize.
type Event interface {
	isEvent()
}

type PointerMove struct{ X, Y float64 }

type TouchMove struct{ X, Y float64 }

// TouchStart carries every active contact at the moment a touch began.
type TouchStart struct{ Touches []trails.Point }

type Resize struct{ W, H int }

func (PointerMove) isEvent() {}
func (TouchMove) isEvent()   {}
func (TouchStart) isEvent()  {}
func (Resize) isEvent()      {}

// Listener handles dispatched events.
type Listener func(Event)

// InputHub fans events out to attached listeners. It is used from the
// game loop only and does no locking.
type InputHub struct {
	next      int
	listeners map[int]Listener
	order     []int
}

func NewInputHub() *InputHub {
	return &InputHub{listeners: map[int]Listener{}}
}

// Attach registers l and returns the function that removes it. Calling the
// returned function more than once is harmless.
func (h *InputHub) Attach(l Listener) (detach func()) {
	id := h.next
	h.next++
	h.listeners[id] = l
	h.order = append(h.order, id)

	return func() {
		if _, ok := h.listeners[id]; !ok {
			return
		}
		delete(h.listeners, id)
		for i, v := range h.order {
			if v == id {
				h.order = append(h.order[:i], h.order[i+1:]...)
				break
			}
		}
	}
}

// Len reports the number of attached listeners.
func (h *InputHub) Len() int { return len(h.listeners) }

func (h *InputHub) Dispatch(e Event) {
	for _, id := range append([]int(nil), h.order...) {
		if l, ok := h.listeners[id]; ok {
			l(e)
		}
	}
}

// Pointer is the target the trails chase. The latest write wins.
type Pointer struct {
	X, Y float64
}

// Track keeps p current from every event dispatched on hub, independent of
// any session, until the returned function is called.
func (p *Pointer) Track(hub *InputHub) (detach func()) {
	return hub.Attach(p.Apply)
}

// Set moves the pointer to (x, y).
func (p *Pointer) Set(x, y float64) {
	p.X, p.Y = x, y
}

func (p *Pointer) Point() trails.Point {
	return trails.Point{X: p.X, Y: p.Y}
}

// Apply updates the pointer from an input event. A touch start only moves
// the pointer when exactly one contact is down.
func (p *Pointer) Apply(e Event) {
	switch ev := e.(type) {
	case PointerMove:
		p.Set(ev.X, ev.Y)
	case TouchMove:
		p.Set(ev.X, ev.Y)
	case TouchStart:
		if len(ev.Touches) == 1 {
			p.Set(ev.Touches[0].X, ev.Touches[0].Y)
		}
	}
}
