package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"capgate/internal/adapter"
	"capgate/internal/api"
	"capgate/pkg/logging"

	"golang.org/x/sync/singleflight"
)

var (
	// ErrEmptyCategoryKey is returned when registering a category without a key.
	ErrEmptyCategoryKey = errors.New("category key must not be empty")
	// ErrNilInvoker is returned when registering a category without an invoker.
	ErrNilInvoker = errors.New("category invoker must not be nil")
	// ErrNoOperations is returned when registering a category with no definitions.
	ErrNoOperations = errors.New("category has no operations")
	// ErrEmptyQuery is returned by Search for an empty query.
	ErrEmptyQuery = errors.New("search query must not be empty")
)

// Registry owns the categories, the operations and their visibility.
//
// All mutation goes through Registry methods. Reads take the read lock,
// registration and toggles take the write lock, and invocations run the
// bound invoker outside any lock.
type Registry struct {
	mu sync.RWMutex

	categories     map[string]*categoryRecord
	categoryOrder  []*categoryRecord
	operations     map[string]*operationRecord
	operationOrder []*operationRecord

	notifier Notifier

	initGroup   singleflight.Group
	initialized atomic.Bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithNotifier sets the notifier signalled on visibility changes.
func WithNotifier(n Notifier) Option {
	return func(r *Registry) {
		r.notifier = n
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		categories: make(map[string]*categoryRecord),
		operations: make(map[string]*operationRecord),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetNotifier replaces the notifier. It exists for hosts that can only build
// their notifier after the registry, such as the MCP tool sync.
func (r *Registry) SetNotifier(n Notifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifier = n
}

// InitializeOnce runs fn at most once successfully for this registry.
//
// Concurrent callers share a single in-flight run and all receive its
// error. After a successful run every later call returns nil without calling
// fn. A failed run leaves the registry uninitialized so a later call may
// retry.
func (r *Registry) InitializeOnce(ctx context.Context, fn func(ctx context.Context, r *Registry) error) error {
	if r.initialized.Load() {
		return nil
	}

	_, err, shared := r.initGroup.Do("initialize", func() (interface{}, error) {
		if r.initialized.Load() {
			return nil, nil
		}
		if err := fn(ctx, r); err != nil {
			return nil, err
		}
		r.initialized.Store(true)
		return nil, nil
	})
	if shared {
		logging.Debug("Registry", "Joined in-flight registry initialization")
	}
	return err
}

// Initialized reports whether InitializeOnce has completed successfully.
func (r *Registry) Initialized() bool {
	return r.initialized.Load()
}

// RegisterCategory registers a category and its operations.
//
// The category starts disabled. Registering an existing key again replaces
// its description and appends only operations whose names are new.
// Operation names already registered, in this or any other category, are
// rejected with a warning and the earlier registration is kept. A category
// is only created when at least one of its operations is accepted.
//
// Args:
//   - key: unique category key
//   - description: human readable category summary
//   - definitions: the operations of the category
//   - invoker: dispatches every accepted operation
//
// Returns the accepted names and the rejected duplicates. The error is
// non-nil only for invalid input.
func (r *Registry) RegisterCategory(key, description string, definitions []api.OperationDefinition, invoker api.Invoker) (RegistrationResult, error) {
	result := RegistrationResult{Category: key}

	if key == "" {
		return result, ErrEmptyCategoryKey
	}
	if invoker == nil {
		return result, fmt.Errorf("register category %s: %w", key, ErrNilInvoker)
	}
	if len(definitions) == 0 {
		return result, fmt.Errorf("register category %s: %w", key, ErrNoOperations)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	category, exists := r.categories[key]
	if !exists {
		category = &categoryRecord{key: key}
	}

	var accepted []*operationRecord
	for _, def := range definitions {
		if def.Name == "" {
			logging.Warn("Registry", "Skipping unnamed operation in category %s", key)
			continue
		}
		if existing, dup := r.operations[def.Name]; dup {
			w := &api.DuplicateRegistrationWarning{
				Operation:        def.Name,
				Category:         key,
				ExistingCategory: existing.category.key,
			}
			logging.Warn("Registry", "%v", w)
			result.Duplicates = append(result.Duplicates, w)
			continue
		}
		if alreadyAccepted(accepted, def.Name) {
			w := &api.DuplicateRegistrationWarning{Operation: def.Name, Category: key, ExistingCategory: key}
			logging.Warn("Registry", "%v", w)
			result.Duplicates = append(result.Duplicates, w)
			continue
		}

		accepted = append(accepted, &operationRecord{
			definition: def,
			category:   category,
			enabled:    category.enabled,
			invoker:    invoker,
		})
	}

	if exists {
		if category.description != description {
			logging.Info("Registry", "Category %s re-registered, description updated", key)
		}
		category.description = description
	} else if len(accepted) == 0 {
		logging.Warn("Registry", "Category %s not created: all %d operations were rejected", key, len(definitions))
		return result, nil
	} else {
		category.description = description
		r.categories[key] = category
		r.categoryOrder = append(r.categoryOrder, category)
	}

	for _, op := range accepted {
		r.operations[op.definition.Name] = op
		r.operationOrder = append(r.operationOrder, op)
		category.operations = append(category.operations, op.definition.Name)
		result.Registered = append(result.Registered, op.definition.Name)
	}

	logging.Info("Registry", "Registered category %s with %d operations (%d duplicates rejected)",
		key, len(result.Registered), len(result.Duplicates))
	return result, nil
}

func alreadyAccepted(accepted []*operationRecord, name string) bool {
	for _, op := range accepted {
		if op.definition.Name == name {
			return true
		}
	}
	return false
}

// RegisterModule lists a module's operations through its adapter and
// registers them as one category dispatched by the same adapter.
func (r *Registry) RegisterModule(key, description string, module adapter.Adapter) (RegistrationResult, error) {
	if module == nil {
		return RegistrationResult{Category: key}, fmt.Errorf("register category %s: %w", key, ErrNilInvoker)
	}
	return r.RegisterCategory(key, description, module.ListOperations(), module)
}

// EnableCategory makes every operation of key visible.
//
// Enabling an already enabled category is a no-op that still returns the
// category's operation names. The notifier is signalled only on an actual
// change.
func (r *Registry) EnableCategory(ctx context.Context, key string) (ToggleResult, error) {
	return r.setCategoryEnabled(ctx, key, true)
}

// DisableCategory hides every operation of key. See EnableCategory.
func (r *Registry) DisableCategory(ctx context.Context, key string) (ToggleResult, error) {
	return r.setCategoryEnabled(ctx, key, false)
}

func (r *Registry) setCategoryEnabled(ctx context.Context, key string, enabled bool) (ToggleResult, error) {
	r.mu.Lock()
	category, ok := r.categories[key]
	if !ok {
		r.mu.Unlock()
		return ToggleResult{Category: key}, api.NewUnknownCategoryError(key)
	}

	changed := category.enabled != enabled
	if changed {
		r.applyLocked(category, enabled)
	}
	result := ToggleResult{
		Category:   key,
		Enabled:    category.enabled,
		Changed:    changed,
		Operations: append([]string(nil), category.operations...),
	}
	notifier := r.notifier
	r.mu.Unlock()

	if changed {
		logging.Info("Registry", "Category %s enabled=%t (%d operations)", key, enabled, len(result.Operations))
		deliver(ctx, notifier)
	}
	return result, nil
}

// applyLocked flips a category and all its operations. Callers hold r.mu.
func (r *Registry) applyLocked(category *categoryRecord, enabled bool) {
	category.enabled = enabled
	for _, name := range category.operations {
		r.operations[name].enabled = enabled
	}
}

// EnableAll enables every disabled category in one batch and signals the
// notifier at most once.
func (r *Registry) EnableAll(ctx context.Context) EnableAllResult {
	r.mu.Lock()
	result := EnableAllResult{
		TotalCategories: len(r.categoryOrder),
		TotalOperations: len(r.operationOrder),
	}
	for _, category := range r.categoryOrder {
		if category.enabled {
			continue
		}
		r.applyLocked(category, true)
		result.CategoriesEnabled++
		result.OperationsEnabled += len(category.operations)
		result.Categories = append(result.Categories, category.key)
	}
	notifier := r.notifier
	r.mu.Unlock()

	if result.CategoriesEnabled > 0 {
		logging.Info("Registry", "Enabled %d categories (%d operations)", result.CategoriesEnabled, result.OperationsEnabled)
		deliver(ctx, notifier)
	}
	return result
}

// ListVisibleOperations returns the definitions of all enabled operations in
// registration order.
func (r *Registry) ListVisibleOperations() []api.OperationDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var defs []api.OperationDefinition
	for _, op := range r.operationOrder {
		if op.enabled {
			defs = append(defs, op.definition)
		}
	}
	return defs
}

// Invoke runs the named operation if its category is enabled.
//
// Returns *api.UnknownOperationError for unregistered names and
// *api.OperationDisabledError, carrying the category key, for operations of
// a disabled category.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error) {
	r.mu.RLock()
	op, ok := r.operations[name]
	if !ok {
		r.mu.RUnlock()
		return nil, api.NewUnknownOperationError(name)
	}
	enabled, categoryKey, invoker := op.enabled, op.category.key, op.invoker
	r.mu.RUnlock()

	if !enabled {
		return nil, api.NewOperationDisabledError(name, categoryKey)
	}

	logging.Debug("Registry", "Invoking %s (category %s)", name, categoryKey)
	return invoker.Invoke(ctx, name, args)
}

// InvokeDirect runs the named operation without checking enablement. It is
// the entry point of proxy mode and cannot return api.OperationDisabledError.
func (r *Registry) InvokeDirect(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error) {
	r.mu.RLock()
	op, ok := r.operations[name]
	if !ok {
		r.mu.RUnlock()
		return nil, api.NewUnknownOperationError(name)
	}
	categoryKey, invoker := op.category.key, op.invoker
	r.mu.RUnlock()

	logging.Debug("Registry", "Invoking %s directly (category %s)", name, categoryKey)
	return invoker.Invoke(ctx, name, args)
}

// Search returns every operation whose name or description contains query,
// case-insensitively, enabled or not, in registration order. The query is
// matched as given, surrounding spaces included; a blank query is rejected.
func (r *Registry) Search(query string) ([]OperationInfo, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	needle := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []OperationInfo
	for _, op := range r.operationOrder {
		if strings.Contains(strings.ToLower(op.definition.Name), needle) ||
			strings.Contains(strings.ToLower(op.definition.Description), needle) {
			matches = append(matches, op.info())
		}
	}
	return matches, nil
}

func (op *operationRecord) info() OperationInfo {
	return OperationInfo{
		Definition: op.definition,
		Category:   op.category.key,
		Enabled:    op.enabled,
	}
}

// Operation looks up a single operation.
func (r *Registry) Operation(name string) (OperationInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	op, ok := r.operations[name]
	if !ok {
		return OperationInfo{}, false
	}
	return op.info(), true
}

// Categories returns all categories in registration order.
func (r *Registry) Categories() []CategoryInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]CategoryInfo, 0, len(r.categoryOrder))
	for _, c := range r.categoryOrder {
		infos = append(infos, c.info())
	}
	return infos
}

// Category looks up a single category.
func (r *Registry) Category(key string) (CategoryInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[key]
	if !ok {
		return CategoryInfo{}, api.NewUnknownCategoryError(key)
	}
	return c.info(), nil
}

func (c *categoryRecord) info() CategoryInfo {
	return CategoryInfo{
		Key:            c.key,
		Description:    c.description,
		Enabled:        c.enabled,
		OperationCount: len(c.operations),
		Operations:     append([]string(nil), c.operations...),
	}
}

// OperationCount returns the number of registered operations.
func (r *Registry) OperationCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.operationOrder)
}

// EnabledOperationCount returns the number of currently visible operations.
func (r *Registry) EnabledOperationCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, op := range r.operationOrder {
		if op.enabled {
			n++
		}
	}
	return n
}
