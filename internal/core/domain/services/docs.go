// Package services contains domain services: logic that spans aggregates or,
// like the access policy, rules on operations against them without belonging
// to any single aggregate.
package services
