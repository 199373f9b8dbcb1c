package launch

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/tailscale/hujson"
)

// Version is the launch.json schema version written to new documents.
const Version = "0.2.0"

const (
	keyVersion        = "version"
	keyConfigurations = "configurations"
)

// Document is a launch.json file. Configurations are kept as raw JSON so
// entries written by other tools pass through untouched.
type Document struct {
	Version        string
	Configurations []json.RawMessage

	// top-level keys other than version and configurations
	extra map[string]json.RawMessage
}

func NewDocument() *Document {
	return &Document{
		Version:        Version,
		Configurations: []json.RawMessage{},
	}
}

// ParseDocument decodes a launch.json file. Comments and trailing commas are
// accepted. A document that is not an object, or whose configurations or
// version have the wrong type, is rejected.
func ParseDocument(data []byte) (*Document, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, errors.Wrap(err, "invalid JSON")
	}

	var top map[string]json.RawMessage
	if err = json.Unmarshal(std, &top); err != nil {
		return nil, errors.Wrap(err, "document is not an object")
	}
	if top == nil {
		return nil, errors.New("document is null")
	}

	d := NewDocument()
	if raw, ok := top[keyVersion]; ok {
		if err = json.Unmarshal(raw, &d.Version); err != nil {
			return nil, errors.Wrap(err, "version is not a string")
		}
		delete(top, keyVersion)
	}
	if raw, ok := top[keyConfigurations]; ok {
		var l []json.RawMessage
		if err = json.Unmarshal(raw, &l); err != nil {
			return nil, errors.Wrap(err, "configurations is not an array")
		}
		if l != nil {
			d.Configurations = l
		}
		delete(top, keyConfigurations)
	}
	if d.Version == "" {
		d.Version = Version
	}
	if len(top) > 0 {
		d.extra = top
	}

	return d, nil
}

// Prepend puts e in front of the existing configurations.
func (d *Document) Prepend(e Entry) error {
	raw, err := marshal(e)
	if err != nil {
		return errors.Wrap(err, "encode entry")
	}
	d.Configurations = append([]json.RawMessage{raw}, d.Configurations...)
	return nil
}

// Summary is the subset of a configuration shown in listings.
type Summary struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Request string `json:"request"`
	Device  string `json:"device"`
}

// Summaries returns one Summary per configuration in document order.
// Configurations that are not objects yield a zero Summary.
func (d *Document) Summaries() []Summary {
	r := make([]Summary, len(d.Configurations))
	for i, raw := range d.Configurations {
		_ = json.Unmarshal(raw, &r[i])
	}
	return r
}

// MarshalJSON writes version and configurations first, then any other
// top-level keys sorted by name.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	writeMember := func(first bool, key string, v interface{}) error {
		if !first {
			buf.WriteByte(',')
		}
		k, err := marshal(key)
		if err != nil {
			return err
		}
		val, err := marshal(v)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	}

	configurations := d.Configurations
	if configurations == nil {
		configurations = []json.RawMessage{}
	}

	buf.WriteByte('{')
	if err := writeMember(true, keyVersion, d.Version); err != nil {
		return nil, err
	}
	if err := writeMember(false, keyConfigurations, configurations); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(d.extra))
	for k := range d.extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := writeMember(false, k, d.extra[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// Encode renders the document with 4-space indentation.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(d); err != nil {
		return nil, errors.Wrap(err, "encode document")
	}
	return buf.Bytes(), nil
}

func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
