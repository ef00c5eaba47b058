package webhooks

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mixelka/chatadapter/pkg/models"
)

// Manifest is the desired webhook set as written in YAML:
//
//	webhooks:
//	  - name: chat-messages
//	    resource: messages
//	    event: created
//	    filter: roomType=direct
//	    target_url: https://bot.example.com/webhooks/chat
type Manifest struct {
	Webhooks []models.Subscription `yaml:"webhooks"`
}

// LoadManifest reads the manifest at path. Entries without a target URL get
// defaultTarget.
func LoadManifest(path, defaultTarget string) ([]models.Subscription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data, defaultTarget)
}

// ParseManifest decodes a manifest document. Unknown keys are rejected so a
// typo does not silently drop a field.
func ParseManifest(data []byte, defaultTarget string) ([]models.Subscription, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var manifest Manifest
	if err := decoder.Decode(&manifest); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	subs := manifest.Webhooks
	for i := range subs {
		if subs[i].TargetURL == "" {
			subs[i].TargetURL = defaultTarget
		}
	}
	return subs, nil
}
