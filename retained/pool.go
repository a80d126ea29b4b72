package retained

import "sync"

// ============================================================================
// Paint Op Pooling
// ============================================================================
//
// Fragments are re-recorded whenever a widget requests paint. The op slices
// of replaced or evicted fragments go back to a pool so that steady-state
// repaints (hover highlights, animations) do not allocate.
//
// Usage:
//   p := &Painter{ops: acquireOps()}
//   ... record ...
//   releaseOps(old.ops)

var paintOpPool = sync.Pool{
	New: func() any {
		s := make([]paintOp, 0, 8)
		return &s
	},
}

// acquireOps returns an empty op slice from the pool.
func acquireOps() []paintOp {
	return (*paintOpPool.Get().(*[]paintOp))[:0]
}

// releaseOps returns an op slice to the pool. The slice must not be used
// afterwards.
func releaseOps(ops []paintOp) {
	if ops == nil {
		return
	}
	// Only pool reasonably sized slices to avoid holding on to large ones.
	if cap(ops) > 1024 {
		return
	}
	clear(ops)
	ops = ops[:0]
	paintOpPool.Put(&ops)
}

// evictFragment drops the cached fragment for id and recycles its ops.
func (r *RenderRoot) evictFragment(id WidgetID) {
	if f, ok := r.g.fragments[id]; ok {
		delete(r.g.fragments, id)
		releaseOps(f.ops)
	}
}
