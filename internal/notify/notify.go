// Package notify renders the single-line notifications every command ends
// with. Commands report through the Notifier interface so tests can record
// what the user would have seen.
package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

type Notifier interface {
	Successf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	// Print writes multi-line content (generated payloads, diff previews)
	// without a level prefix.
	Print(msg string)
}

var (
	green  = color.New(color.FgGreen).SprintFunc()
	blue   = color.New(color.FgBlue).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

type Terminal struct {
	out io.Writer
	err io.Writer
}

func NewTerminal(out, err io.Writer) *Terminal {
	return &Terminal{out: out, err: err}
}

func (t *Terminal) Successf(format string, args ...any) {
	fmt.Fprintf(t.out, "%s %s\n", green("✔"), fmt.Sprintf(format, args...))
}

func (t *Terminal) Infof(format string, args ...any) {
	fmt.Fprintf(t.out, "%s %s\n", blue("•"), fmt.Sprintf(format, args...))
}

func (t *Terminal) Warnf(format string, args ...any) {
	fmt.Fprintf(t.err, "%s %s\n", yellow("!"), fmt.Sprintf(format, args...))
}

func (t *Terminal) Errorf(format string, args ...any) {
	fmt.Fprintf(t.err, "%s %s\n", red("✖"), fmt.Sprintf(format, args...))
}

func (t *Terminal) Print(msg string) {
	if msg == "" {
		return
	}
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(t.out, msg)
}

// Recorder captures notifications for tests.
type Recorder struct {
	mu      sync.Mutex
	Entries []Entry
}

type Entry struct {
	Level   string
	Message string
}

func (r *Recorder) record(level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (r *Recorder) Print(msg string)                    { r.record("print", "%s", msg) }
func (r *Recorder) Successf(format string, args ...any) { r.record("success", format, args...) }
func (r *Recorder) Infof(format string, args ...any)    { r.record("info", format, args...) }
func (r *Recorder) Warnf(format string, args ...any)    { r.record("warn", format, args...) }
func (r *Recorder) Errorf(format string, args ...any)   { r.record("error", format, args...) }

func (r *Recorder) Messages(level string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, entry := range r.Entries {
		if level == "" || entry.Level == level {
			out = append(out, entry.Message)
		}
	}
	return out
}
