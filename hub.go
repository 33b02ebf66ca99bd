package glyphfall

import "slices"

// --- Handler registry ---

type resizeHandler struct {
	id uint32
	fn func(w, h int)
}

func (h resizeHandler) handlerID() uint32 { return h.id }

type pointerHandler struct {
	id uint32
	fn func(x, y float64)
}

func (h pointerHandler) handlerID() uint32 { return h.id }

type frameRequest struct {
	id uint32
	fn func()
}

func (h frameRequest) handlerID() uint32 { return h.id }

type handlerRegistry struct {
	resize      []resizeHandler
	pointerMove []pointerHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered listener.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters the listener so it no longer fires. Calling Remove more
// than once, or on a zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventResize:
		h.reg.resize = removeByID(h.reg.resize, h.id)
	case EventPointerMove:
		h.reg.pointerMove = removeByID(h.reg.pointerMove, h.id)
	}
}

// FrameHandle identifies a pending frame request.
type FrameHandle struct {
	id  uint32
	hub *Hub
}

// Cancel withdraws the frame request if it has not run yet.
func (h FrameHandle) Cancel() {
	if h.hub == nil {
		return
	}
	h.hub.frames = removeByID(h.hub.frames, h.id)
}

func removeByID[T interface{ handlerID() uint32 }](s []T, id uint32) []T {
	for i := range s {
		if s[i].handlerID() == id {
			return slices.Delete(s, i, i+1)
		}
	}
	return s
}

// --- Hub ---

// Hub is the host environment an Overlay mounts into. Backends own a Hub and
// feed it viewport changes, pointer movement and one Frame call per display
// refresh; the overlay subscribes to those through listeners and one-shot
// frame requests. All methods must be called from the backend's loop
// goroutine.
type Hub struct {
	surface       Surface
	width, height int
	pointer       Vec2

	handlers handlerRegistry
	frames   []frameRequest
	running  []frameRequest
	nextID   uint32
	frame    uint64

	injectQueue []Vec2
}

// NewHub creates a Hub for a w×h viewport. surface may be nil when the
// backend could not create one; overlays mounted on such a hub stay idle.
func NewHub(surface Surface, w, h int) *Hub {
	return &Hub{
		surface: surface,
		width:   w,
		height:  h,
	}
}

// Surface returns the drawing surface, or nil if none is available.
func (h *Hub) Surface() Surface {
	return h.surface
}

// ViewportSize returns the current viewport dimensions.
func (h *Hub) ViewportSize() (int, int) {
	return h.width, h.height
}

// Pointer returns the last reported pointer position.
func (h *Hub) Pointer() Vec2 {
	return h.pointer
}

// OnResize registers fn to run on every viewport resize.
func (h *Hub) OnResize(fn func(w, h int)) CallbackHandle {
	h.handlers.nextID++
	id := h.handlers.nextID
	h.handlers.resize = append(h.handlers.resize, resizeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &h.handlers, event: EventResize}
}

// OnPointerMove registers fn to run on every pointer move.
func (h *Hub) OnPointerMove(fn func(x, y float64)) CallbackHandle {
	h.handlers.nextID++
	id := h.handlers.nextID
	h.handlers.pointerMove = append(h.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &h.handlers, event: EventPointerMove}
}

// ListenerCount returns the number of listeners registered for event.
func (h *Hub) ListenerCount(event EventType) int {
	switch event {
	case EventResize:
		return len(h.handlers.resize)
	case EventPointerMove:
		return len(h.handlers.pointerMove)
	default:
		return 0
	}
}

// RequestFrame schedules fn to run once on the next Frame. Requests made
// while a frame is running are deferred to the following frame.
func (h *Hub) RequestFrame(fn func()) FrameHandle {
	h.nextID++
	h.frames = append(h.frames, frameRequest{id: h.nextID, fn: fn})
	return FrameHandle{id: h.nextID, hub: h}
}

// PendingFrames returns the number of outstanding frame requests.
func (h *Hub) PendingFrames() int {
	return len(h.frames)
}

// Resize records new viewport dimensions and notifies resize listeners.
// Listeners fire even when the dimensions did not change. The listener set
// is fixed when dispatch starts: a listener removed by an earlier one still
// receives this event.
func (h *Hub) Resize(w, height int) {
	h.width, h.height = w, height
	// Listeners may remove listeners; dispatch over a copy.
	for _, r := range slices.Clone(h.handlers.resize) {
		r.fn(w, height)
	}
}

// MovePointer records a pointer position and notifies pointer listeners.
func (h *Hub) MovePointer(x, y float64) {
	h.pointer = Vec2{X: x, Y: y}
	for _, p := range slices.Clone(h.handlers.pointerMove) {
		p.fn(x, y)
	}
}

// Frame advances the host by one display refresh: at most one injected
// pointer event is delivered, then every frame request pending at entry runs
// in request order.
func (h *Hub) Frame() {
	h.frame++
	h.drainInjected()

	if len(h.frames) == 0 {
		return
	}
	h.running = append(h.running[:0], h.frames...)
	clear(h.frames)
	h.frames = h.frames[:0]
	for _, f := range h.running {
		f.fn()
	}
	clear(h.running)
	h.running = h.running[:0]
}

// FrameCount returns how many times Frame has been called.
func (h *Hub) FrameCount() uint64 {
	return h.frame
}
