package frame

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
)

// Session is an ordered, finite batch of frames from one algorithm run.
// Index 0 is the initial state and the last index is the final state. The
// execution backend delivers the whole batch at once; nothing is streamed.
type Session struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Module    string    `json:"module,omitempty" bson:"module,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Frames    []Frame   `json:"frames" bson:"frames"`
}

// envelope is the full backend response shape: metadata plus a visualization
// object wrapping the frame list.
type envelope struct {
	Metadata struct {
		Name        string `json:"name"`
		Module      string `json:"module"`
		TotalFrames int    `json:"total_frames"`
	} `json:"metadata"`
	Visualization struct {
		Frames []Frame `json:"frames"`
	} `json:"visualization"`
	Frames []Frame `json:"frames"`
}

// ReadSession decodes a session from r.
//
// Two input shapes are accepted, distinguished by structural inspection:
// a bare JSON array of frames, or an envelope object carrying metadata and
// frames (either at the top level or nested under "visualization"). Sessions
// without an id are assigned a fresh UUID.
func ReadSession(r io.Reader) (*Session, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	return ParseSession(data)
}

// ParseSession decodes a session from raw JSON bytes. See [ReadSession] for
// the accepted shapes.
func ParseSession(data []byte) (*Session, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("parse session: empty input")
	}

	s := &Session{CreatedAt: time.Now().UTC()}

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &s.Frames); err != nil {
			return nil, fmt.Errorf("parse frame list: %w", err)
		}
	} else {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("parse session envelope: %w", err)
		}
		s.Name = env.Metadata.Name
		s.Module = env.Metadata.Module
		s.Frames = env.Visualization.Frames
		if len(s.Frames) == 0 {
			s.Frames = env.Frames
		}
	}

	s.ID = uuid.NewString()
	return s, nil
}

// ReadSessionFile reads and decodes a session from a JSON file.
func ReadSessionFile(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSession(f)
}

// MarshalSession serializes a session to pretty-printed JSON bytes.
func MarshalSession(s *Session) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// WriteSessionFile writes a session to a JSON file.
func WriteSessionFile(s *Session, path string) error {
	data, err := MarshalSession(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// UnmarshalJSON accepts variable values as any JSON scalar and stores the
// textual form. The backend emits strings, but AI-generated runs emit bare
// numbers and booleans for the same field.
func (v *Variable) UnmarshalJSON(data []byte) error {
	type alias struct {
		Name  string          `json:"name"`
		Value json.RawMessage `json:"value"`
		Type  string          `json:"type"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	v.Name = a.Name
	v.Type = a.Type

	if len(a.Value) == 0 {
		v.Value = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(a.Value, &str); err == nil {
		v.Value = str
		return nil
	}
	v.Value = string(bytes.TrimSpace(a.Value))
	return nil
}
