// Package session persists uploaded visualization sessions.
//
// Two implementations back the same Store interface: FileStore keeps one
// JSON document per session under a directory (CLI and single-node serve
// mode), MongoStore keeps sessions in a collection (multi-node serve mode).
package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/algoviz/algoviz/pkg/errors"
	"github.com/algoviz/algoviz/pkg/frame"
)

// Summary is the listing view of a stored session: everything except the
// frames themselves.
type Summary struct {
	ID         string    `json:"id" bson:"_id"`
	Name       string    `json:"name,omitempty" bson:"name,omitempty"`
	Module     string    `json:"module,omitempty" bson:"module,omitempty"`
	FrameCount int       `json:"frame_count" bson:"frame_count"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// Store persists sessions by ID.
type Store interface {
	// Put stores a session, replacing any existing session with the same ID.
	Put(ctx context.Context, s *frame.Session) error

	// Get retrieves a session. Returns ErrCodeSessionNotFound if absent.
	Get(ctx context.Context, id string) (*frame.Session, error)

	// List returns summaries of all stored sessions, newest first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases resources held by the store.
	Close(ctx context.Context) error
}

// FileStore keeps one JSON document per session in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store in dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create session dir %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Put stores the session as <id>.json.
func (st *FileStore) Put(ctx context.Context, s *frame.Session) error {
	if s.ID == "" {
		return errors.New(errors.ErrCodeInvalidSession, "session has no ID")
	}
	return frame.WriteSessionFile(s, st.path(s.ID))
}

// Get loads a session by ID. Stored documents are canonical Session JSON,
// not backend envelopes, so they decode directly.
func (st *FileStore) Get(ctx context.Context, id string) (*frame.Session, error) {
	data, err := os.ReadFile(st.path(id))
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read session %s", id)
	}
	var s frame.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSession, err, "decode session %s", id)
	}
	return &s, nil
}

// List scans the directory and builds summaries, newest first.
func (st *FileStore) List(ctx context.Context) ([]Summary, error) {
	entries, err := os.ReadDir(st.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list sessions")
	}

	summaries := make([]Summary, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(st.dir, e.Name()))
		if err != nil {
			continue
		}
		var s frame.Session
		if err := json.Unmarshal(data, &s); err != nil {
			// Corrupt file: skip, don't fail the whole listing.
			continue
		}
		summaries = append(summaries, Summary{
			ID:         s.ID,
			Name:       s.Name,
			Module:     s.Module,
			FrameCount: len(s.Frames),
			CreatedAt:  s.CreatedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

// Delete removes the session file. A missing file is not an error.
func (st *FileStore) Delete(ctx context.Context, id string) error {
	err := os.Remove(st.path(id))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete session %s", id)
	}
	return nil
}

// Close does nothing for file stores.
func (st *FileStore) Close(ctx context.Context) error { return nil }

func (st *FileStore) path(id string) string {
	// Session IDs are UUIDs, but sanitize anyway so a hand-crafted ID can't
	// escape the directory.
	id = filepath.Base(id)
	return filepath.Join(st.dir, id+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
