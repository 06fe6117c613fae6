// Package snapshot captures and restores a full schedule set.
//
// A snapshot is a single document with a version marker and a flat list
// of schedules. Parent links are recorded on the child side only; the
// symmetric child lists are rebuilt on restore.
//
//	{
//	  "version": 1,
//	  "schedules": [
//	    {"id": "sem", "name": "Semester", "start": "...", "end": "...", "level": 0, "exclusive": true},
//	    {"id": "exam", "name": "Final Exam", "start": "...", "end": "...", "level": 1, "parents": ["sem"]}
//	  ]
//	}
//
// Capture is deterministic: schedules appear in the repository's
// canonical order and parent lists are sorted, so capturing the same
// state twice yields identical documents. Restore replays the schedules
// through the repository's own validation, so a snapshot edited by hand
// is checked as strictly as API input.
//
// [Write], [Read], [Export] and [Import] wrap the document in JSON for
// streams and files; persistence backends store the [Document] directly.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"sort"
	"time"

	"github.com/mgrundel/timelane/pkg/errors"
	"github.com/mgrundel/timelane/pkg/schedule"
)

// Version is the current snapshot format version.
const Version = 1

// Document is a serialized schedule set.
type Document struct {
	Version   int     `json:"version" bson:"version"`
	Schedules []Entry `json:"schedules" bson:"schedules"`
}

// Entry is one serialized schedule.
type Entry struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Start     time.Time `json:"start" bson:"start"`
	End       time.Time `json:"end" bson:"end"`
	Level     int       `json:"level" bson:"level"`
	Exclusive bool      `json:"exclusive,omitempty" bson:"exclusive,omitempty"`
	Parents   []string  `json:"parents,omitempty" bson:"parents,omitempty"`
}

// Capture serializes the manager's full state into a document.
func Capture(m *schedule.Manager) Document {
	doc := Document{Version: Version}
	for _, s := range m.All() {
		doc.Schedules = append(doc.Schedules, Entry{
			ID:        s.ID,
			Name:      s.Name,
			Start:     s.Start,
			End:       s.End,
			Level:     s.Level,
			Exclusive: s.Exclusive,
			Parents:   s.Parents,
		})
	}
	return doc
}

// Restore rebuilds a manager from a document.
//
// Schedules are replayed coarsest level first so every declared parent
// exists before its children, then validated and stored exactly as live
// input would be. Restore returns an error if the version is unknown or
// any schedule fails validation; a partial state is never returned.
func Restore(doc Document) (*schedule.Manager, error) {
	if doc.Version != Version {
		return nil, errors.New(errors.ErrCodeSnapshotRead,
			"unsupported snapshot version %d (want %d)", doc.Version, Version)
	}

	// Parents sit at strictly coarser levels than their children, so
	// level order is a valid replay order. ID breaks ties for stable
	// error reporting.
	entries := make([]Entry, len(doc.Schedules))
	copy(entries, doc.Schedules)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Level != entries[j].Level {
			return entries[i].Level < entries[j].Level
		}
		return entries[i].ID < entries[j].ID
	})

	m := schedule.NewManager()
	for _, e := range entries {
		err := m.CreateWithID(e.ID, schedule.Payload{
			Name:      e.Name,
			Start:     e.Start,
			End:       e.End,
			Level:     e.Level,
			Exclusive: e.Exclusive,
			Parents:   e.Parents,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSnapshotRead, err, "schedule %s", e.ID)
		}
	}

	return m, nil
}

// StateHash fingerprints the manager's state. Capture is deterministic,
// so equal schedule sets hash equally; the hash is used in cache keys
// for derived artifacts.
func StateHash(m *schedule.Manager) string {
	data, _ := json.Marshal(Capture(m))
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Write encodes the manager's full state as JSON and writes it to w.
// The output can be re-imported with [Read] for round-trip processing.
func Write(m *schedule.Manager, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Capture(m)); err != nil {
		return errors.Wrap(errors.ErrCodeSnapshotWrite, err, "encode snapshot")
	}
	return nil
}

// Export writes the manager's state to a JSON file at path.
// This is a convenience wrapper around [Write] for file-based output.
func Export(m *schedule.Manager, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSnapshotWrite, err, "create %s", path)
	}
	defer f.Close()
	return Write(m, f)
}

// Read decodes a JSON snapshot from r into a fresh manager. It returns
// the same validation errors as [Restore].
func Read(r io.Reader) (*schedule.Manager, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSnapshotRead, err, "decode snapshot")
	}
	return Restore(doc)
}

// Import reads a JSON snapshot file at path and returns the rebuilt
// manager. It returns the same validation errors as [Read].
func Import(path string) (*schedule.Manager, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSnapshotRead, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}
