// Package wizard holds the explicit state record of a multi-step form session
// and the section navigator that mutates it. Everything here is synchronous and
// free of I/O so the transitions can be exercised without a renderer.
package wizard
