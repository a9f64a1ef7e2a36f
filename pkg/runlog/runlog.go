// Package runlog records what happened during a training run, grouped by
// category and subcomponent, and mirrors each event to the console logger.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/wdm0006/trainkit/pkg/logger"
)

type Entry struct {
	Time         time.Time `json:"time" yaml:"time"`
	Category     string    `json:"category" yaml:"category"`
	Subcomponent string    `json:"subcomponent" yaml:"subcomponent"`
	Message      string    `json:"message" yaml:"message"`
}

// Log collects entries for one run. It is not safe for concurrent use.
type Log struct {
	runID   string
	started time.Time
	entries []Entry
	console logger.Logger
	now     func() time.Time
}

// New starts a run log. A nil console logger keeps events in memory only.
func New(console logger.Logger) *Log {
	if console == nil {
		console = logger.Nop()
	}
	l := &Log{runID: uuid.NewString(), console: console, now: time.Now}
	l.started = l.now()
	return l
}

func (l *Log) RunID() string { return l.runID }

// UpdateLog records message under category/subcomponent.
func (l *Log) UpdateLog(category, subcomponent, message string) {
	l.entries = append(l.entries, Entry{Time: l.now(), Category: category, Subcomponent: subcomponent, Message: message})
	l.console.Info(message, "category", category, "subcomponent", subcomponent)
}

// Entries returns a copy of every entry in insertion order.
func (l *Log) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Messages returns the messages recorded under category/subcomponent.
func (l *Log) Messages(category, subcomponent string) []string {
	var out []string
	for _, e := range l.entries {
		if e.Category == category && e.Subcomponent == subcomponent {
			out = append(out, e.Message)
		}
	}
	return out
}

type report struct {
	RunID   string                         `json:"run_id" yaml:"run_id"`
	Started time.Time                      `json:"started" yaml:"started"`
	Log     map[string]map[string][]string `json:"log" yaml:"log"`
	Entries []Entry                        `json:"entries" yaml:"entries"`
}

func (l *Log) report() report {
	tree := map[string]map[string][]string{}
	for _, e := range l.entries {
		if tree[e.Category] == nil {
			tree[e.Category] = map[string][]string{}
		}
		tree[e.Category][e.Subcomponent] = append(tree[e.Category][e.Subcomponent], e.Message)
	}
	return report{RunID: l.runID, Started: l.started, Log: tree, Entries: l.Entries()}
}

// Save writes the log as YAML (.yaml, .yml) or JSON (anything else).
func (l *Log) Save(path string) error {
	var (
		b   []byte
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err = yaml.Marshal(l.report())
	default:
		b, err = json.MarshalIndent(l.report(), "", "  ")
	}
	if err != nil {
		return fmt.Errorf("runlog: encode: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("runlog: %w", err)
	}
	return nil
}
