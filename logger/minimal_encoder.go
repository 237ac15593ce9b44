package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset  = "\x1b[0m"
	colorBold   = "\x1b[1m"
	colorDim    = "\x1b[38;5;245m"
	colorGreen  = "\x1b[38;5;108m"
	colorYellow = "\x1b[38;5;179m"
	colorRed    = "\x1b[38;5;167m"
)

var bufferPool = buffer.NewPool()

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  engine  wrote file  node=style path=src/Button/Button.module.css"
//
// Fields added with With() are kept in the embedded map encoder and printed
// before the per-entry fields.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
	color bool
}

func newMinimalEncoder(color bool) *minimalEncoder {
	return &minimalEncoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		color:            color,
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := newMinimalEncoder(enc.color)
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return clone
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	final.AppendString(enc.paint(colorDim, ent.Time.Format("15:04:05")))

	// Level: only show for non-INFO entries
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(enc.level(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(enc.paint(colorGreen, ent.LoggerName))
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	if pairs := enc.pairs(fields); len(pairs) > 0 {
		final.AppendString("  ")
		final.AppendString(strings.Join(pairs, " "))
	}

	final.AppendString("\n")
	return final, nil
}

// pairs renders context fields (sorted) followed by entry fields (in call
// order) as key=value. No field is ever dropped.
func (enc *minimalEncoder) pairs(fields []zapcore.Field) []string {
	var out []string

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, enc.pair(k, enc.Fields[k]))
	}

	for _, f := range fields {
		m := zapcore.NewMapObjectEncoder()
		f.AddTo(m)
		if v, ok := m.Fields[f.Key]; ok {
			out = append(out, enc.pair(f.Key, v))
			continue
		}
		// Inline/namespace fields land under their own keys
		for k, v := range m.Fields {
			out = append(out, enc.pair(k, v))
		}
	}
	return out
}

func (enc *minimalEncoder) pair(key string, value interface{}) string {
	return enc.paint(colorDim, key+"=") + fmt.Sprintf("%v", value)
}

func (enc *minimalEncoder) level(l zapcore.Level) string {
	switch l {
	case zapcore.DebugLevel:
		return enc.paint(colorDim, "DEBUG")
	case zapcore.WarnLevel:
		return enc.paint(colorBold+colorYellow, "WARN")
	default:
		return enc.paint(colorBold+colorRed, l.CapitalString())
	}
}

func (enc *minimalEncoder) paint(color, s string) string {
	if !enc.color {
		return s
	}
	return color + s + colorReset
}
