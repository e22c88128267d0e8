// Package plc assigns field wiring requests to the channels of a PLC rack.
//
// # References
//
// A connection row whose "Component To" column starts with "PLC:" talks to
// the PLC. [ParseDesignation] splits such a tag once, at the boundary:
//
//	PLC:DI        generic digital input, any free channel will do
//	PLC:DI2       module DI2, already resolved
//	PLC:RTD:+R    generic RTD request for the "+R" wire of a channel
//
// Generic requests are resolved against a [Rack], an ordered list of module
// [Slot] values. Resolved rows point at "PLC:<designation>" with the pin
// label "<suffix><channel>", e.g. "PLC:RTD1" / "+R3".
//
// # Packing
//
// Requests are bucketed by type. For each bucket, candidate modules are those
// whose designation minus trailing digits equals the type ("DI" matches DI1,
// DI2), falling back to modules whose signal type equals it ("4-20mA").
//
//   - Single-pin buckets are ordered by (terminal, pin) in natural order and
//     take one free channel each.
//   - Multi-pin buckets (every request carries a signal suffix) keep all
//     pins of one device on one channel. Only modules offering every suffix
//     in use are candidates. Devices are ordered by their lowest
//     (terminal, pin).
//
// Channels already held by resolved rows are never handed out again.
//
// # Shortfalls
//
// Running out of channels, a type no module serves, and a bucket mixing
// suffixed and plain requests are recorded as [Warning] values in the
// [Result]. None of them is an error: partial assignment is normal while a
// design is still in progress.
package plc
