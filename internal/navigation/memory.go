package navigation

import "sync"

// MemoryNavigator is an in-process navigation stack. It backs the app
// shell, where no platform navigator exists, and the bridge tests.
type MemoryNavigator struct {
	mu       sync.Mutex
	routes   []string
	listener func(route string)
}

// NewMemoryNavigator creates an empty in-memory navigator
func NewMemoryNavigator() *MemoryNavigator {
	return &MemoryNavigator{}
}

// Push adds a route on top of the stack
func (n *MemoryNavigator) Push(route string, state map[string]interface{}) {
	n.mu.Lock()
	n.routes = append(n.routes, route)
	listener := n.listener
	n.mu.Unlock()
	if listener != nil {
		listener(route)
	}
}

// Replace swaps the top route, or pushes when the stack is empty
func (n *MemoryNavigator) Replace(route string, state map[string]interface{}) {
	n.mu.Lock()
	if len(n.routes) == 0 {
		n.routes = []string{route}
	} else {
		n.routes[len(n.routes)-1] = route
	}
	listener := n.listener
	n.mu.Unlock()
	if listener != nil {
		listener(route)
	}
}

// Pop removes the top route, reporting false when there is nothing to
// go back to
func (n *MemoryNavigator) Pop() bool {
	n.mu.Lock()
	if len(n.routes) <= 1 {
		n.mu.Unlock()
		return false
	}
	n.routes = n.routes[:len(n.routes)-1]
	route := n.routes[len(n.routes)-1]
	listener := n.listener
	n.mu.Unlock()
	if listener != nil {
		listener(route)
	}
	return true
}

// SetRouteListener registers the route change callback
func (n *MemoryNavigator) SetRouteListener(fn func(route string)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listener = fn
}

// Routes returns a snapshot of the route stack
func (n *MemoryNavigator) Routes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.routes...)
}

// SimulateExternalChange drives the listener as if the platform itself
// navigated (deep link, hardware back)
func (n *MemoryNavigator) SimulateExternalChange(route string) {
	n.mu.Lock()
	n.routes = append(n.routes, route)
	listener := n.listener
	n.mu.Unlock()
	if listener != nil {
		listener(route)
	}
}
