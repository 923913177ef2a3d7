package logger

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const tskvTimeLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	bufPool     = buffer.NewPool()
	tskvEscaper = strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`)
)

// tskvEncoder renders one entry per line:
//
//	timestamp=<ISO-8601 UTC>\tlevel=<level>\tmessage=<msg>[\t<key>=<value>...]
//
// Context fields are collected in the embedded map encoder and emitted in key
// order.  Tabs, newlines and carriage returns inside keys and values are
// escaped.
type tskvEncoder struct {
	*zapcore.MapObjectEncoder
}

func NewTSKVEncoder() zapcore.Encoder {
	return &tskvEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (e *tskvEncoder) Clone() zapcore.Encoder {
	c := zapcore.NewMapObjectEncoder()
	for k, v := range e.Fields {
		c.Fields[k] = v
	}
	return &tskvEncoder{MapObjectEncoder: c}
}

func (e *tskvEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	enc := e.Clone().(*tskvEncoder)
	for _, f := range fields {
		f.AddTo(enc.MapObjectEncoder)
	}

	buf := bufPool.Get()
	buf.AppendString("timestamp=")
	buf.AppendString(ent.Time.UTC().Format(tskvTimeLayout))
	buf.AppendString("\tlevel=")
	buf.AppendString(ent.Level.String())
	buf.AppendString("\tmessage=")
	buf.AppendString(tskvEscaper.Replace(ent.Message))
	if ent.LoggerName != "" {
		appendPair(buf, "logger", ent.LoggerName)
	}
	if ent.Caller.Defined {
		appendPair(buf, "caller", ent.Caller.TrimmedPath())
	}

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		appendPair(buf, k, formatValue(enc.Fields[k]))
	}

	if ent.Stack != "" {
		appendPair(buf, "stacktrace", ent.Stack)
	}
	buf.AppendByte('\n')
	return buf, nil
}

func appendPair(buf *buffer.Buffer, key, val string) {
	buf.AppendByte('\t')
	buf.AppendString(tskvEscaper.Replace(key))
	buf.AppendByte('=')
	buf.AppendString(tskvEscaper.Replace(val))
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case time.Time:
		return v.UTC().Format(tskvTimeLayout)
	case time.Duration:
		return v.String()
	case []byte:
		return string(v)
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}
