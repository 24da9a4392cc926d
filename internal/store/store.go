package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/SarahE-Dev/moms-watchlist-app/internal/model"
)

// Store is the suggestion persistence contract. Every backend satisfies it
// identically so swapping storage never changes observable behavior.
//
// List never fails on an empty store and always returns normalized records:
// watched as a strict bool, tmdbId and rating as numbers, whatever the
// backend persisted them as.
type Store interface {
	List(ctx context.Context) ([]model.Suggestion, error)
	// Add validates the payload, assigns id/addedAt/watched and persists the
	// record. Callers re-list to observe the new state.
	Add(ctx context.Context, payload model.NewSuggestion) error
	// MarkWatched sets watched=true. Idempotent; unknown id -> ErrNotFound.
	MarkWatched(ctx context.Context, id string) error
	// Remove deletes the record. Removing an unknown id is a no-op success.
	Remove(ctx context.Context, id string) error
	Close() error
}

// ErrNotFound signals that the referenced suggestion id does not exist.
var ErrNotFound = errors.New("suggestion not found")

// ValidationError reports a rejected Add payload. The store performs no
// mutation when returning it.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return fmt.Sprintf("invalid suggestion: %v", e.Err) }
func (e *ValidationError) Unwrap() error { return e.Err }

// StorageError reports a failed persistence operation. Previously persisted
// data is left unchanged.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// defaultNewID returns a fresh suggestion id. xid is unique within the
// process even for back-to-back calls in the same millisecond, unlike the
// coarse wall-clock ids this scheme replaces.
func defaultNewID() string { return xid.New().String() }

// checkPayload runs the creation-contract validation shared by all adapters.
func checkPayload(payload model.NewSuggestion) error {
	if err := payload.Validate(); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// newRecord builds the full record from a validated payload.
func newRecord(payload model.NewSuggestion, id string) model.Suggestion {
	return model.Suggestion{
		ID:          id,
		TMDBID:      payload.TMDBID,
		Type:        payload.Type,
		Title:       payload.Title,
		Overview:    payload.Overview,
		PosterPath:  payload.PosterPath,
		ReleaseDate: payload.ReleaseDate,
		Rating:      *payload.Rating,
		AddedAt:     time.Now().UTC().Format(time.RFC3339),
		Watched:     false,
	}
}
