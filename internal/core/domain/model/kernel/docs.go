// Package kernel contains shared value objects used across the domain model.
// These are the building blocks of aggregates: immutable, validated on
// construction, and free of infrastructure concerns.
package kernel
