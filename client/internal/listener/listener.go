package listener

import "github.com/netbirdio/netstatus/client/internal/connstatus"

// NetConnChangedListener is a callback interface for connectivity status changes.
// Implementations are compared by identity, so they must be comparable (pointers, not funcs).
type NetConnChangedListener interface {
	OnNetConnChanged(status connstatus.ConnectStatus) error
}

// FuncListener adapts a plain function to NetConnChangedListener
type FuncListener struct {
	fn func(status connstatus.ConnectStatus) error
}

// NewFunc wraps fn. Every call returns a distinct listener identity.
func NewFunc(fn func(status connstatus.ConnectStatus) error) *FuncListener {
	return &FuncListener{fn: fn}
}

func (l *FuncListener) OnNetConnChanged(status connstatus.ConnectStatus) error {
	if l.fn == nil {
		return nil
	}
	return l.fn(status)
}
