// Package kernel contains shared value objects used across domain aggregates.
// These are the building blocks of the domain model: identifiers and other
// primitives that carry their own validation rules.
package kernel
