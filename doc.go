// Package grago provides the core containers for an embedded graph-analysis
// toolkit.
//
// This module carries the containers that the graph structures and algorithms
// are built on, starting with the string vector in package strvec: a
// dynamically-sized sequence of owned, variable-length byte strings with
// explicit capacity management and strict partial-failure semantics.
//
// # Design
//
// Containers here are passive data structures: no internal locking, no
// background goroutines, no blocking operations. Callers serialize mutation;
// concurrent readers are safe as long as no writer is active.
//
// All container memory flows through the mem.Allocator interface so that
// memory budgets (package resource) and test harnesses (package testutil) can
// account for or fail individual allocations. Every fallible operation either
// succeeds or returns an error with the container left in a valid state.
//
// # Error Surface
//
// Fallible operations return errors wrapping one of the sentinel codes in
// this package (ErrNoMemory, ErrInvalidArgument, ErrOverflow). A process-wide
// raise hook can be installed with SetRaiseHook to observe every raised error
// together with its human-readable message.
//
// # Persistence
//
// Package snapshot serializes containers into a self-describing binary format
// with optional zstd or lz4 compression; package blobstore moves snapshots to
// local disk, memory, S3 or MinIO.
package grago
