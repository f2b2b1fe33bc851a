// Package delivery contains the delivery aggregate and its lifecycle state
// machine: status transitions, driver assignment and failure annotation.
package delivery
