package internal

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/korneil/launchif/internal/launch"
)

// CommandSaveConfig is the form's submit message.
const CommandSaveConfig = "saveConfig"

// Message is one form message as posted by the configuration page.
type Message struct {
	Command string `json:"command"`
	launch.Input
}

func ParseMessage(line []byte) (m Message, err error) {
	if err = json.Unmarshal(bytes.TrimSpace(line), &m); err != nil {
		return m, errors.Wrap(err, "invalid message")
	}
	if m.Command == "" {
		return m, errors.New("message has no command")
	}
	return m, nil
}
