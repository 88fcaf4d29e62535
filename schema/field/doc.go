// Package field holds the closed vocabulary of property kinds and formats
// recognized in a schema document.
//
// # Kinds
//
// The "type" keyword of a property selects one of:
//
//	string, number, integer, object, array, boolean
//
// Any other literal is rejected by ParseKind.
//
// # Formats
//
// The "format" keyword refines a string or number:
//
//	date, date-time, time, double, float, decimal,
//	uuid, ipv4, ipv6, mac, json, byte
//
// # Bounds
//
// Numeric bounds ("minimum", "maximum") are kept as *big.Float values so
// that type narrowing compares them exactly, including 64-bit limits.
// "maxLength" accepts either a number or the literal "max".
package field
