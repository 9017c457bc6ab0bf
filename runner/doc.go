// Package runner is the embeddable driver for one build cycle: it configures
// logging, locates and loads the build configuration, processes an entry
// asset, emits the reachable graph and optionally reports the most-referenced
// assets. Host programs construct a Runner with their own writers and
// filesystem backend; there is no process-level surface here.
package runner
