// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"verbose", logrus.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New()
			l.SetLevel(tt.level)
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New().Configure("info", "json")
	l.SetOutput(&buf)

	l.WithField("field", "field_body").Info("converted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "converted", entry["msg"])
	assert.Equal(t, "field_body", entry["field"])
	assert.Equal(t, "info", entry["level"])
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New().Configure("debug", "text")
	l.SetOutput(&buf)

	l.Debug("cache hit")

	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), `msg="cache hit"`)
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.SetLevel("debug")
	l.Error("nowhere")
}
