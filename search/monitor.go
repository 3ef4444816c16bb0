package search

import (
	"github.com/campuskit/wayfinder/core"
)

// ResolveMonitor provides hooks to observe the resolution process.
// Implement this interface to track intermediate steps and results during
// query resolution.
type ResolveMonitor interface {
	Start(query string)
	AfterAcademicLookup(events []core.CalendarEvent)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of ResolveMonitor
type noopMonitor struct{}

var _ ResolveMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                             {}
func (n *noopMonitor) AfterAcademicLookup(_ []core.CalendarEvent) {}
func (n *noopMonitor) Finish(_ []core.SearchResult)               {}
