package tui

import (
	"fmt"
	"strings"
)

// Tab represents a page of the dashboard
type Tab int

const (
	TabToday Tab = iota
	TabTimesheet
	TabActivity
	TabScreenshots
)

type route struct {
	path string
	name string
}

// routes maps each tab to its path and navigation label. The order is the
// sidebar order.
var routes = []route{
	TabToday:       {path: "/", name: "Today"},
	TabTimesheet:   {path: "/timesheet", name: "Timesheet"},
	TabActivity:    {path: "/activity", name: "Activity"},
	TabScreenshots: {path: "/screenshots", name: "Screenshots"},
}

// String returns the navigation label of the tab.
func (t Tab) String() string {
	if t < 0 || int(t) >= len(routes) {
		return fmt.Sprintf("Tab(%d)", int(t))
	}
	return routes[t].name
}

// Path returns the route path of the tab.
func (t Tab) Path() string {
	if t < 0 || int(t) >= len(routes) {
		return ""
	}
	return routes[t].path
}

// Paths returns every known route path in navigation order.
func Paths() []string {
	paths := make([]string, len(routes))
	for i, r := range routes {
		paths[i] = r.path
	}
	return paths
}

// TabForPath resolves a route path to its tab. Unknown paths are an error.
func TabForPath(path string) (Tab, error) {
	for i, r := range routes {
		if r.path == path {
			return Tab(i), nil
		}
	}
	return 0, fmt.Errorf("unknown page %q (valid pages: %s)", path, strings.Join(Paths(), ", "))
}
