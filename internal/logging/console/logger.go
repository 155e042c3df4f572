package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Level orders severities from most to least verbose.
type Level int8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l Level) String() string {
	if l < LevelTrace || l > LevelFatal {
		return "INFO"
	}
	return levelNames[l]
}

// ParseLevel maps a config string to a Level. Unknown names fall back to
// LevelInfo.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// Options configures NewProvider. Zero values select stderr, wall-clock
// timestamps, and LevelInfo.
type Options struct {
	Writer   io.Writer
	TimeFunc func() time.Time
	MinLevel *Level
}

type provider struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
	min Level
}

// NewProvider builds a LoggerProvider that writes one key=value line per
// entry.
func NewProvider(opts Options) interfaces.LoggerProvider {
	p := &provider{out: opts.Writer, now: opts.TimeFunc, min: LevelInfo}
	if p.out == nil {
		p.out = os.Stderr
	}
	if p.now == nil {
		p.now = time.Now
	}
	if opts.MinLevel != nil {
		p.min = *opts.MinLevel
	}
	return p
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	l := &lineLogger{provider: p}
	if name != "" {
		l.pairs = []pair{{key: "logger", val: name}}
	}
	return l
}

func (p *provider) write(line []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out.Write(line)
}

// pair keeps bound fields in insertion order so a logger's identity fields
// lead each entry.
type pair struct {
	key string
	val any
}

type lineLogger struct {
	provider *provider
	pairs    []pair
	ctx      context.Context
}

var _ interfaces.FieldsLogger = (*lineLogger)(nil)

func (l *lineLogger) clone() *lineLogger {
	pairs := make([]pair, len(l.pairs), len(l.pairs)+4)
	copy(pairs, l.pairs)
	return &lineLogger{provider: l.provider, pairs: pairs, ctx: l.ctx}
}

func (l *lineLogger) set(key string, val any) {
	for i := range l.pairs {
		if l.pairs[i].key == key {
			l.pairs[i].val = val
			return
		}
	}
	l.pairs = append(l.pairs, pair{key: key, val: val})
}

// WithFields binds fields to every subsequent entry. Map keys are applied
// in sorted order so repeated runs produce identical lines.
func (l *lineLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	next := l.clone()
	for _, key := range keys {
		next.set(key, fields[key])
	}
	return next
}

func (l *lineLogger) WithContext(ctx context.Context) interfaces.Logger {
	next := l.clone()
	next.ctx = ctx
	return next
}

func (l *lineLogger) Trace(msg string, args ...any) { l.log(LevelTrace, msg, args) }
func (l *lineLogger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args) }
func (l *lineLogger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args) }
func (l *lineLogger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args) }
func (l *lineLogger) Error(msg string, args ...any) { l.log(LevelError, msg, args) }
func (l *lineLogger) Fatal(msg string, args ...any) { l.log(LevelFatal, msg, args) }

func (l *lineLogger) log(level Level, msg string, args []any) {
	if level < l.provider.min {
		return
	}

	entry := l.clone()
	if fields := logging.ContextFields(entry.ctx); len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for key := range fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			entry.set(key, fields[key])
		}
	}
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		entry.set(key, args[i+1])
	}
	if len(args)%2 == 1 {
		entry.set("!extra", args[len(args)-1])
	}

	line := make([]byte, 0, 128)
	line = l.provider.now().UTC().AppendFormat(line, time.RFC3339Nano)
	line = append(line, ' ')
	line = append(line, level.String()...)
	line = append(line, ' ')
	line = append(line, msg...)
	for _, p := range entry.pairs {
		line = append(line, ' ')
		line = append(line, p.key...)
		line = append(line, '=')
		line = appendValue(line, p.val)
	}
	line = append(line, '\n')

	l.provider.write(line)
}

func appendValue(dst []byte, val any) []byte {
	var text string
	switch v := val.(type) {
	case nil:
		return append(dst, "<nil>"...)
	case string:
		text = v
	case error:
		text = v.Error()
	case fmt.Stringer:
		text = v.String()
	case time.Time:
		text = v.UTC().Format(time.RFC3339Nano)
	case bool:
		return strconv.AppendBool(dst, v)
	case int:
		return strconv.AppendInt(dst, int64(v), 10)
	case int64:
		return strconv.AppendInt(dst, v, 10)
	case float64:
		return strconv.AppendFloat(dst, v, 'f', -1, 64)
	default:
		text = fmt.Sprintf("%v", v)
	}
	if strings.ContainsAny(text, " \t\n\"=") {
		return strconv.AppendQuote(dst, text)
	}
	return append(dst, text...)
}
