package state

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
)

// ErrVersion is returned for snapshots written by another layout version
var ErrVersion = errors.New("state: unsupported snapshot version")

// Document is the top level save file: the snapshot plus the level it
// produced
type Document struct {
	Snapshot Snapshot   `json:"snapshot" jsonschema:"required"`
	Level    *LevelData `json:"level,omitempty"`
}

// Schema describes Document as a JSON schema
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	schema := reflector.Reflect(&Document{})
	schema.Title = "deepdelve save document"
	schema.Description = "RNG state, feature counters and an optional generated level."
	return schema
}

// SchemaJSON renders Schema as indented JSON
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}

// MarshalDocument encodes a save document as indented JSON
func MarshalDocument(d Document) ([]byte, error) {
	if d.Snapshot.Version == 0 {
		d.Snapshot.Version = Version
	}
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDocument decodes a save document and checks the snapshot version
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("state: decode document: %w", err)
	}
	if d.Snapshot.Version != Version {
		return Document{}, fmt.Errorf("%w: got %d, want %d", ErrVersion, d.Snapshot.Version, Version)
	}
	return d, nil
}
