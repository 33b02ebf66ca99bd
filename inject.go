package glyphfall

// InjectPointerMove queues a synthetic pointer move at (x, y). Queued events
// are delivered one per Frame, ahead of that frame's requests, exactly as if
// the backend had reported them.
func (h *Hub) InjectPointerMove(x, y float64) {
	h.injectQueue = append(h.injectQueue, Vec2{X: x, Y: y})
}

// InjectPath queues a pointer sweep from (fromX, fromY) to (toX, toY),
// linearly interpolated over the given number of frames (minimum 2). The
// first event lands on the start point and the last on the end point.
func (h *Hub) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		h.InjectPointerMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// PendingInjections returns the number of queued synthetic events.
func (h *Hub) PendingInjections() int {
	return len(h.injectQueue)
}

// drainInjected pops one queued event and delivers it. Reports whether an
// event was consumed.
func (h *Hub) drainInjected() bool {
	if len(h.injectQueue) == 0 {
		return false
	}
	evt := h.injectQueue[0]
	copy(h.injectQueue, h.injectQueue[1:])
	h.injectQueue = h.injectQueue[:len(h.injectQueue)-1]

	h.MovePointer(evt.X, evt.Y)
	return true
}
