package navigation

import (
	"log"
	"sync"
)

// Options adjust how a view change is applied
type Options struct {
	// Replace swaps the top stack entry instead of pushing a new one
	Replace bool
	// State is an arbitrary payload attached to the navigation event
	State map[string]interface{}
}

// Entry is one element of the logical navigation stack
type Entry struct {
	View  View
	Path  string
	State map[string]interface{}
}

// Navigator is the underlying navigation stack the bridge drives. The
// bridge never assumes the navigator shares its view vocabulary; it
// speaks routes and reconciles route changes back by name.
type Navigator interface {
	Push(route string, state map[string]interface{})
	Replace(route string, state map[string]interface{})
	// Pop returns false when the stack cannot go back further
	Pop() bool
	// SetRouteListener registers the callback invoked on every route
	// change, including ones the bridge did not initiate
	SetRouteListener(func(route string))
}

// Bridge owns the logical view state. All screen changes go through
// SetViewWithPath; route changes originating inside the navigator
// (deep links, hardware back) are reconciled back into the view enum.
type Bridge struct {
	mu    sync.Mutex
	nav   Navigator
	stack []Entry

	// reconciling suppresses the route listener while the bridge itself
	// is driving the navigator
	reconciling bool
}

// NewBridge creates a bridge over the given navigator, starting at the
// splash view
func NewBridge(nav Navigator) *Bridge {
	b := &Bridge{
		nav:   nav,
		stack: []Entry{{View: ViewSplash, Path: ViewSplash.DefaultPath()}},
	}
	nav.SetRouteListener(b.onRouteChange)
	return b
}

// SetViewWithPath makes the given view current. An empty path uses the
// view's default route. With opts.Replace the top entry is swapped
// instead of pushed.
func (b *Bridge) SetViewWithPath(view View, path string, opts *Options) {
	if !view.Valid() {
		log.Printf("Warning: ignoring navigation to unknown view %q", view)
		return
	}
	if path == "" {
		path = view.DefaultPath()
	}

	var state map[string]interface{}
	replace := false
	if opts != nil {
		state = opts.State
		replace = opts.Replace
	}
	entry := Entry{View: view, Path: path, State: state}

	b.mu.Lock()
	if replace && len(b.stack) > 0 {
		b.stack[len(b.stack)-1] = entry
	} else {
		b.stack = append(b.stack, entry)
	}
	b.reconciling = true
	b.mu.Unlock()

	if replace {
		b.nav.Replace(path, state)
	} else {
		b.nav.Push(path, state)
	}

	b.mu.Lock()
	b.reconciling = false
	b.mu.Unlock()
}

// GoBack pops the current view. On an empty or single-entry stack it is
// a no-op; it never fails.
func (b *Bridge) GoBack() {
	b.mu.Lock()
	if len(b.stack) <= 1 {
		b.mu.Unlock()
		return
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.reconciling = true
	b.mu.Unlock()

	b.nav.Pop()

	b.mu.Lock()
	b.reconciling = false
	b.mu.Unlock()
}

// CurrentView returns the logical view currently shown
func (b *Bridge) CurrentView() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.stack) == 0 {
		return ViewSplash
	}
	return b.stack[len(b.stack)-1].View
}

// CurrentEntry returns the full top stack entry
func (b *Bridge) CurrentEntry() Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.stack) == 0 {
		return Entry{View: ViewSplash, Path: ViewSplash.DefaultPath()}
	}
	return b.stack[len(b.stack)-1]
}

// Depth returns the logical stack depth
func (b *Bridge) Depth() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.stack)
}

// onRouteChange reconciles navigator-originated route changes (deep
// links, hardware back) into the logical view. Matching is best effort:
// an unrecognized route is logged and the current view kept.
func (b *Bridge) onRouteChange(route string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.reconciling {
		return
	}

	view, ok := viewForRoute(route)
	if !ok {
		log.Printf("Warning: route %q does not match any known view, keeping %q",
			route, b.stack[len(b.stack)-1].View)
		return
	}

	// A route change matching the entry below the top is treated as a
	// back navigation; anything else is a jump
	if len(b.stack) >= 2 && b.stack[len(b.stack)-2].View == view {
		b.stack = b.stack[:len(b.stack)-1]
		return
	}
	if b.stack[len(b.stack)-1].View == view {
		return
	}
	b.stack = append(b.stack, Entry{View: view, Path: route})
}
