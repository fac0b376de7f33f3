// Package space manages the campus space catalogue for the SmartBreak backend.
//
// A space is a physical location students can visit during breaks: a
// cafeteria, library, garden, or study room. Each carries a coordinate,
// an occupancy level, an average rating, and a set of filterable
// features (wifi, power outlets, noise level).
//
// Wire-facing JSON field names are in Spanish to match the clients.
// Feature lists and category IDs are stored as JSON text columns,
// keeping the document shape the clients expect without extra tables.
package space
