// Package projection turns game log notifications into CSV tables.
//
// Each table is an independent projector writing to its own
// table.RowWriter. The Dispatcher fans rcg.Handler notifications out to the
// projectors that are enabled for a run.
package projection
