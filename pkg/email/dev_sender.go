package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
)

// DevSender writes each message to disk instead of sending it.
// Every message produces <stamp>_<subject>.html, .txt and .json files.
type DevSender struct {
	dir  string
	from string
	seq  atomic.Uint64
}

// NewDevSender creates a development sender that saves emails under dir.
// The directory is created on first send.
func NewDevSender(dir, from string) *DevSender {
	return &DevSender{dir: dir, from: from}
}

func (d *DevSender) IsConfigured() bool { return d.dir != "" }

type devMetadata struct {
	Timestamp string `json:"timestamp"`
	To        string `json:"to"`
	From      string `json:"from"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
}

// SendEmail saves the message bodies and metadata to the configured directory.
func (d *DevSender) SendEmail(_ context.Context, msg Message) error {
	msg = msg.withDefaultFrom(d.from)
	if err := msg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrFailedToSendEmail, err)
	}

	now := time.Now()
	base := fmt.Sprintf("%s_%04d_%s", now.Format("2006_01_02_150405"), d.seq.Add(1), sanitizeFilename(msg.Subject))

	meta, err := json.MarshalIndent(devMetadata{
		Timestamp: now.Format(time.RFC3339),
		To:        msg.To,
		From:      msg.From,
		Subject:   msg.Subject,
		Tag:       msg.Tag,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal metadata: %v", ErrFailedToSendEmail, err)
	}

	files := map[string][]byte{
		".html": []byte(msg.HTML),
		".txt":  []byte(msg.Text),
		".json": meta,
	}
	for ext, data := range files {
		if err := os.WriteFile(filepath.Join(d.dir, base+ext), data, 0o644); err != nil {
			return fmt.Errorf("%w: failed to write %s file: %v", ErrFailedToSendEmail, ext, err)
		}
	}
	return nil
}

var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename turns a subject line into a short, filesystem-safe name.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 80
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
