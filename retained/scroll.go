package retained

// ============================================================================
// Scroll Into View
// ============================================================================

// runPanRequests delivers RequestPanToChild to every ancestor of each
// requesting widget, nearest first, with the rect in the ancestor's local
// coordinates. Scrolling containers react by adjusting their offset.
func (r *RenderRoot) runPanRequests() {
	if len(r.g.panRequests) == 0 {
		return
	}
	requests := r.g.panRequests
	r.g.panRequests = nil

	for _, req := range requests {
		n, ok := r.arena.lookup(req.target)
		if !ok {
			Logger().Warn("retained: dropping scroll request for removed widget", "id", req.target)
			continue
		}
		window := transformRect(n.state.WindowTransform, req.rect)
		path := r.arena.idPath(req.target)
		for i := len(path) - 2; i >= 0; i-- {
			anc := r.arena.find(path[i])
			local := transformRect(anc.state.WindowTransform.Invert(), window)
			r.runSingleUpdate(anc, Update{Kind: RequestPanToChild, Rect: local})
		}
	}
}
