package store

import (
	"errors"
	"fmt"

	"github.com/cakecache/cake/policy"
)

var (
	// ErrInvalidArgument is returned by New when MaxSize or MaxVolume is not
	// positive. Invalid attribute values never reach the store: attribute.Put
	// rejects them with attribute.ErrInvalidValue.
	ErrInvalidArgument = errors.New("store: invalid argument")

	// ErrShutdown is returned by mutating operations once the store has
	// been shut down.
	ErrShutdown = errors.New("store: shut down")

	// ErrPoisoned is returned by every operation once a policy contract
	// violation has been observed. The store cannot recover in place; a
	// fresh store.New is the only way forward.
	ErrPoisoned = errors.New("store: poisoned by a policy contract violation")

	// ErrNoLoader is returned by GetOrLoad when no loader.Func was
	// configured.
	ErrNoLoader = errors.New("store: no loader configured")

	// ErrKeyNotFound is returned by Replace when the key has no current
	// entry to compare-and-swap against.
	ErrKeyNotFound = errors.New("store: key not found")

	// ErrDuplicateDependency is returned when a policy registers the same
	// attribute descriptor twice, hard or soft, while the store starts. It
	// wraps policy.ErrDuplicateAttribute.
	ErrDuplicateDependency = fmt.Errorf("store: attribute already registered: %w", policy.ErrDuplicateAttribute)
)
