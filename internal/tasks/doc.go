// package tasks implements long-running lyrics operations.
//
// ExportEngine fetches, optionally translates, and writes lyrics for one or
// many tracks using a rate-limited worker pool. Operations emit progress
// updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks
