// Package domain defines the core domain types and repository contracts.
//
// Concept-oriented files (session.go, item.go, errors.go) hold types and
// interfaces only; implementations live under internal/adapter.
package domain
