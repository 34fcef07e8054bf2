// Package uid generates identifiers that are not owned by storage: request
// correlation ids and event ids.
package uid

// StringID generates opaque string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates time ordered 64-bit identifiers.
type NumberID interface {
	Generate() int64
}
