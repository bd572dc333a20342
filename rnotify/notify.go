// Package rnotify provides the "send-available" observer the Uploader
// signals through: a best-effort, non-blocking callback that the core must
// never keep alive on its own, per §5/§9
package rnotify

// Callback performs whatever the registrar needs to do to wake up a writer
// waiting for to-send queue space. It must do minimal work and must not
// call back into the Uploader it was registered on
type Callback func()

// Notifier wraps a Callback so the Uploader can hold a weak reference to
// it (via weak.Pointer) instead of extending its lifetime
type Notifier struct {
	cb Callback
}

// New returns a Notifier that invokes cb on Notify
func New(cb Callback) *Notifier {
	return &Notifier{cb: cb}
}

// Notify invokes the wrapped callback. A nil receiver (the weak pointer's
// target was already collected) or a nil callback are both silently
// swallowed, matching the "notification failures are swallowed" rule
func (n *Notifier) Notify() {
	if n == nil || n.cb == nil {
		return
	}
	n.cb()
}
