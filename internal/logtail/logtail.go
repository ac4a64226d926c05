package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 || strings.TrimSpace(path) == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	seen := 0
	for scanner.Scan() {
		ring[seen%maxLines] = scanner.Text()
		seen++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if seen <= maxLines {
		return append([]string(nil), ring[:seen]...), nil
	}
	start := seen % maxLines
	return append(append([]string(nil), ring[start:]...), ring[:start]...), nil
}

// Entry is one decoded JSON log line.
type Entry struct {
	Time      time.Time
	Level     zerolog.Level
	Component string
	Message   string
	Error     string
	Fields    map[string]string
	Raw       string
}

// Parse decodes a line written by the JSON logger. Lines that are not JSON
// objects come back with NoLevel and the raw text as the message.
func Parse(line string) Entry {
	entry := Entry{Level: zerolog.NoLevel, Raw: line, Message: line}
	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return entry
	}

	entry.Message = ""
	entry.Fields = make(map[string]string)
	for k, v := range fields {
		text := scalarText(v)
		switch k {
		case zerolog.TimestampFieldName:
			if ts, err := time.Parse(time.RFC3339, text); err == nil {
				entry.Time = ts
			}
		case zerolog.LevelFieldName:
			if lvl, err := zerolog.ParseLevel(text); err == nil {
				entry.Level = lvl
			}
		case zerolog.MessageFieldName:
			entry.Message = text
		case zerolog.ErrorFieldName:
			entry.Error = text
		case "cmp":
			entry.Component = text
		default:
			entry.Fields[k] = text
		}
	}
	return entry
}

// Format renders an entry as a single human-readable line.
func (e Entry) Format() string {
	if e.Fields == nil {
		return e.Raw
	}
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Format("15:04:05"))
		b.WriteByte(' ')
	}
	b.WriteString(strings.ToUpper(levelLabel(e.Level)))
	if e.Component != "" {
		b.WriteString(" [")
		b.WriteString(e.Component)
		b.WriteByte(']')
	}
	if e.Message != "" {
		b.WriteByte(' ')
		b.WriteString(e.Message)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(e.Fields[k])
	}
	if e.Error != "" {
		b.WriteString(" error=")
		b.WriteString(e.Error)
	}
	return b.String()
}

func levelLabel(l zerolog.Level) string {
	if l == zerolog.NoLevel {
		return "---"
	}
	return l.String()
}

func scalarText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
}
