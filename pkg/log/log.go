// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/srcpatch/pkg/text"
)

// 🎨 Display configuration
const (
	ruleIndent   = 4  // spaces to indent rule entries
	ruleWidth    = 28 // width for the rule name
	outcomeWidth = 16 // width for the outcome text
)

// 🎯 EditOperation is one rule applied to one file
type EditOperation struct {
	File    string       // File path
	Rule    string       // Rule name
	Outcome text.Outcome // What the rule did
	Count   int          // Number of substitutions
}

// 📄 FileOperation groups the edits made to a single file
type FileOperation struct {
	Path   string // File path
	Plan   string // Plan name
	DryRun bool   // Whether writes are suppressed
}

// 🎯 Logger prints human readable progress and mirrors it to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	current *FileOperation
	edits   []EditOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

type contextKey struct{}

// 🎯 FromContext gets the logger from context, falling back to a discarding logger
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return New(io.Discard, zerolog.Nop())
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func (l *Logger) formatEdit(op EditOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Outcome {
	case text.Applied:
		symbol = '✓'
		symbolColor = color.FgGreen
	case text.AlreadyApplied:
		symbol = '•'
		symbolColor = color.FgCyan
	default:
		symbol = '✗'
		symbolColor = color.FgRed
	}

	count := ""
	if op.Count > 0 {
		count = fmt.Sprintf("x%d", op.Count)
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", ruleIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", ruleWidth, op.Rule),
		color.New(symbolColor).Sprint(fmt.Sprintf("%-*s", outcomeWidth, op.Outcome.String())),
		count)
}

// 📝 LogEdit logs the result of one rule
func (l *Logger) LogEdit(ctx context.Context, op EditOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.edits = append(l.edits, op)

	fmt.Fprintln(l.console, l.formatEdit(op))

	ev := l.zlog.Info()
	if op.Outcome == text.NotFound {
		ev = l.zlog.Warn()
	}
	ev.Str("file", op.File).
		Str("rule", op.Rule).
		Str("outcome", op.Outcome.String()).
		Int("count", op.Count).
		Msg("edit")
}

// 📝 StartFile starts logging edits for a file
func (l *Logger) StartFile(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = &op
	l.edits = nil

	mode := ""
	if op.DryRun {
		mode = " " + color.New(color.Faint).Sprint("(dry run)")
	}
	fmt.Fprintf(l.console, "%s %s %s %s%s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Path),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.Plan),
		mode)

	l.zlog.Info().
		Str("file", op.Path).
		Str("plan", op.Plan).
		Bool("dry_run", op.DryRun).
		Msg("patching file")
}

// 📝 EndFile ends the current file and returns its edits
func (l *Logger) EndFile(ctx context.Context) []EditOperation {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return nil
	}

	applied := 0
	for _, e := range l.edits {
		if e.Outcome == text.Applied {
			applied++
		}
	}
	l.zlog.Info().
		Str("file", l.current.Path).
		Int("edits", len(l.edits)).
		Int("applied", applied).
		Msg("file complete")

	edits := l.edits
	l.current = nil
	l.edits = nil
	return edits
}

// 📝 Print writes a raw line to the console only
func (l *Logger) Print(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, msg)
}

// 📝 Diff writes a rendered diff to w. Writes are serialized with the
// console so concurrent files do not interleave.
func (l *Logger) Diff(w io.Writer, diff string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(w, diff)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("srcpatch")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
