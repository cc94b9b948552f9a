package ui

type listener struct {
	fn func()
}

// listenerList keeps registration order; removal is safe while dispatching.
type listenerList []*listener

func (l *listenerList) add(fn func()) func() {
	h := &listener{fn: fn}
	*l = append(*l, h)
	return func() { l.remove(h) }
}

func (l *listenerList) remove(h *listener) {
	if h.fn == nil {
		return
	}
	h.fn = nil
	list := *l
	for i, cur := range list {
		if cur == h {
			*l = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

func (l listenerList) call() {
	if len(l) == 0 {
		return
	}
	for _, h := range append(listenerList(nil), l...) {
		if h.fn != nil {
			h.fn()
		}
	}
}
