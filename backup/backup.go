/*
Package backup defines the portable backup document: a versioned JSON
envelope carrying a full snapshot of all six collections.

PURPOSE:
  One document format serves both the manual "download a backup" flow and the
  automatic on-save backup (store/jsonfile). Restore validates the envelope,
  then replaces the whole in-memory state atomically - there is no partial
  restore.

ROUND-TRIP GUARANTEE:
  Decode(Encode(doc)) preserves every record field, so restoring an export of
  the current state reproduces it exactly.
*/
package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/realdriver/fleet-engine/fleet"
)

// Version identifies the document layout. Bump only on incompatible changes.
const Version = "1.0"

// Metadata carries the backup id and per-collection record counts, so a
// restore prompt can describe the document without decoding the payload.
type Metadata struct {
	BackupID string `json:"backupId"`
	fleet.Counts
}

// Document is the backup envelope. Data is a pointer so a document missing
// its payload is distinguishable from one with six empty collections.
type Document struct {
	Version   string       `json:"version"`
	Timestamp time.Time    `json:"timestamp"`
	Data      *fleet.State `json:"data"`
	Metadata  Metadata     `json:"metadata"`
	Auto      bool         `json:"autoBackup,omitempty"`
}

// New builds a document around a snapshot.
func New(state fleet.State, now time.Time) Document {
	return Document{
		Version:   Version,
		Timestamp: now.UTC(),
		Data:      &state,
		Metadata: Metadata{
			BackupID: uuid.NewString(),
			Counts:   state.Counts(),
		},
	}
}

// Encode serializes the document as indented JSON.
func Encode(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return data, nil
}

// Decode parses and validates a backup document. A document without a
// version or data section is rejected with fleet.ErrInvalidBackup.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", fleet.ErrInvalidBackup, err)
	}
	if doc.Version == "" || doc.Data == nil {
		return Document{}, fleet.ErrInvalidBackup
	}
	return doc, nil
}

// FileName returns the timestamped name for a downloaded backup, e.g.
// "fleet_backup_2024-01-15_10-30-00.json".
func FileName(now time.Time) string {
	return "fleet_backup_" + now.Format("2006-01-02_15-04-05") + ".json"
}
