package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/shoutboxnet/shoutbox-go/pkg/email"
)

// readMessageFile loads messages from a YAML or JSON file.
func readMessageFile(path string) ([]email.EmailOptions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open message file: %w", err)
	}
	defer f.Close()

	msgs, err := decodeMessages(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return msgs, nil
}

// decodeMessages accepts a single message mapping or a sequence of them.
// JSON input is valid YAML and decodes the same way.
func decodeMessages(r io.Reader) ([]email.EmailOptions, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("message file is empty")
		}
		return nil, err
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	switch root.Kind {
	case yaml.MappingNode:
		var msg email.EmailOptions
		if err := root.Decode(&msg); err != nil {
			return nil, err
		}
		return []email.EmailOptions{msg}, nil
	case yaml.SequenceNode:
		var msgs []email.EmailOptions
		if err := root.Decode(&msgs); err != nil {
			return nil, err
		}
		if len(msgs) == 0 {
			return nil, errors.New("message list is empty")
		}
		return msgs, nil
	default:
		return nil, fmt.Errorf("line %d: expected a message or a list of messages", root.Line)
	}
}

// composeMessages layers flag values over every file message, then fills
// what is still empty from the configured defaults. Without file messages
// the flags describe a single message.
func composeMessages(fromFile []email.EmailOptions, flags, defaults email.EmailOptions) ([]email.EmailOptions, error) {
	if len(fromFile) == 0 {
		fromFile = []email.EmailOptions{{}}
	}

	out := make([]email.EmailOptions, 0, len(fromFile))
	for i, msg := range fromFile {
		if err := mergo.Merge(&msg, flags, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		if err := mergo.Merge(&msg, defaults); err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		out = append(out, msg)
	}
	return out, nil
}
