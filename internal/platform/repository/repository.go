// Package repository defines the contract every store gateway adapter
// implements. The authoritative store is the durable truth; nothing in
// this package knows about caching.
package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors shared by all adapters. Feature layers translate
// these into their own error vocabulary where needed.
var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write violates a uniqueness or
	// concurrency constraint.
	ErrConflict = errors.New("conflicting record")
)

const (
	// DefaultPageSize applies when a query does not specify one.
	DefaultPageSize = 20
	// MaxPageSize bounds a single page of results.
	MaxPageSize = 100
)

// Query describes a paginated, filtered list lookup. Filters map
// column names to exact-match values.
type Query struct {
	Filters  map[string]any
	Page     int
	PageSize int
}

// Normalize clamps pagination to legal bounds: page >= 1, page size in
// [1, MaxPageSize].
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// Offset returns the row offset for the normalized query.
func (q Query) Offset() int {
	n := q.Normalize()
	return (n.Page - 1) * n.PageSize
}

// Signature returns a canonical string for the query, used as a cache
// key suffix. Filter keys are sorted so that equivalent queries always
// produce the same signature and distinct filters never collide.
func (q Query) Signature() string {
	n := q.Normalize()
	keys := make([]string, 0, len(n.Filters))
	for k := range n.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%v,", k, n.Filters[k])
	}
	fmt.Fprintf(&b, "p%d,s%d", n.Page, n.PageSize)
	return b.String()
}

// Repository is the generic store gateway, implemented once per entity
// type. Entity-specific lookups (duplicate checks, approval swaps) are
// declared by the consuming use case on top of this contract.
type Repository[T any] interface {
	Insert(ctx context.Context, e *T) error
	Update(ctx context.Context, e *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindByQuery(ctx context.Context, q Query) ([]T, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
