// Package sentinel provides a string-backed error type for sentinel errors
// that can be declared as constants.
//
// Constants cannot be reassigned by importers, and because Error is a
// comparable value type, errors.Is matches it through any wrapped chain.
package sentinel
