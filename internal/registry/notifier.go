package registry

import (
	"context"

	"capgate/pkg/logging"
)

// Notifier receives "visibility changed" signals from the registry.
//
// Implementations must not assume the signal describes exactly one delta;
// they re-read Registry.ListVisibleOperations. There is no error return:
// delivery is best effort and the registry never surfaces a delivery problem
// to its caller.
type Notifier interface {
	VisibilityChanged(ctx context.Context)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context)

// VisibilityChanged calls f.
func (f NotifierFunc) VisibilityChanged(ctx context.Context) {
	f(ctx)
}

// BestEffort adapts a fallible send function into a Notifier. Errors are
// logged and dropped.
func BestEffort(send func(ctx context.Context) error) Notifier {
	return NotifierFunc(func(ctx context.Context) {
		if err := send(ctx); err != nil {
			logging.Warn("Registry", "Dropping visibility change notification: %v", err)
		}
	})
}

// Notifiers fans a signal out to several notifiers in order.
func Notifiers(ns ...Notifier) Notifier {
	return NotifierFunc(func(ctx context.Context) {
		for _, n := range ns {
			deliver(ctx, n)
		}
	})
}

// deliver calls n and swallows a panic, so no notifier can break a toggle.
func deliver(ctx context.Context, n Notifier) {
	if n == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logging.Warn("Registry", "Visibility change notifier panicked: %v", r)
		}
	}()
	n.VisibilityChanged(ctx)
}
