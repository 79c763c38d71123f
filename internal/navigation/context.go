// Package navigation holds dashboard navigation state owned by the caller
// and passed explicitly to the screens that need it.
package navigation

import (
	"fmt"
	"sync"
)

type Tab string

const (
	TabOverview     Tab = "overview"
	TabAnalytics    Tab = "analytics"
	TabProducts     Tab = "products"
	TabOrders       Tab = "orders"
	TabTransactions Tab = "transactions"
	TabCustomers    Tab = "customers"
	TabSettings     Tab = "settings"
)

var Tabs = []Tab{TabOverview, TabAnalytics, TabProducts, TabOrders, TabTransactions, TabCustomers, TabSettings}

func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// State текущая вкладка и состояние боковой панели
type State struct {
	Tab              Tab  `json:"tab"`
	SidebarCollapsed bool `json:"sidebarCollapsed"`
}

type Context struct {
	mu        sync.Mutex
	state     State
	listeners []func(State)
}

func New() *Context {
	return &Context{state: State{Tab: TabOverview}}
}

func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Select switches tab; selecting the current tab does not notify.
func (c *Context) Select(t Tab) {
	c.set(func(s *State) bool {
		if s.Tab == t {
			return false
		}
		s.Tab = t
		return true
	})
}

func (c *Context) ToggleSidebar() {
	c.set(func(s *State) bool {
		s.SidebarCollapsed = !s.SidebarCollapsed
		return true
	})
}

func (c *Context) Subscribe(fn func(State)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Context) set(fn func(*State) bool) {
	c.mu.Lock()
	changed := fn(&c.state)
	s := c.state
	ls := append([]func(State){}, c.listeners...)
	c.mu.Unlock()
	if !changed {
		return
	}
	for _, l := range ls {
		l(s)
	}
}
