// Package report turns a connection registry and the final allocation State
// into terminal strip listings.
//
// # Terminal Report
//
// [Terminals] groups connections by (terminal, pin). Several connections on
// the same side of one pin are joined with " / ", which is how a fan-out or
// bridge on a single physical clamp reads on paper.
//
// Every terminal with at least one real connection is then padded with blank
// rows for pins the State allocated but nothing was wired to, so the printed
// strip is complete. Terminals with no connections at all are left out.
//
// Rows are ordered by terminal tag, then by pin: "prefix:n" pins first (by
// prefix, then n), then plain numbers, then anything else.
//
// # Post-processing
//
// A terminal report often has to absorb field wiring that never passed
// through the registry. [Finalize] runs the full pipeline:
//
//  1. append external rows
//  2. apply "all" and range bridges
//  3. [Merge] duplicate pins, [FillGaps], sort in natural order
//  4. apply per-prefix bridges
//
// # CSV
//
// [WriteCSV] and [ExportCSV] emit the report with a fixed header. Output is
// a pure function of the rows, so exporting the same State twice produces
// identical bytes.
package report
