// Package loader provides price panels to the analytics engine.
//
// Prices come either from CSV files (one date column, one column per asset)
// or from the EODHD end-of-day API. Both paths go through Align, which puts
// per-asset histories on a common calendar: values are forward-filled and
// dates before every asset has a price are dropped.
package loader
