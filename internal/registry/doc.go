// Package registry implements the capability registry: the single source of
// truth for which operations exist, how they are grouped into categories,
// and which of them are currently visible to the caller.
//
// # Model
//
// Every domain module is registered once, at startup, as a category. Each of
// its operations becomes an operation record that points back at the
// category. Categories start disabled. Enabling or disabling a category flips
// the category flag and every member operation flag under one write lock, so
// no reader ever observes a half-toggled category.
//
// Operation names are unique across the whole registry. A later registration
// of an existing name is rejected with an api.DuplicateRegistrationWarning
// and the first registration stays authoritative.
//
// # Notifications
//
// When visibility actually changes, the registry calls its Notifier. The
// Notifier interface has no error return: delivery is best effort and a
// failing or panicking notifier never reaches the caller of EnableCategory,
// DisableCategory or EnableAll. Notifications are not deltas; consumers must
// re-read ListVisibleOperations.
//
// # Initialization
//
// Registration is expected to run once per process before any request is
// served. Hosts that reuse a warm process across otherwise stateless
// invocations wrap the registration pass in InitializeOnce, which collapses
// concurrent cold starts onto a single run.
package registry
