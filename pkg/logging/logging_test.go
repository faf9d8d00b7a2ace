// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/mthnguyener/simple-agentic-workflow/pkg/logging"
)

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := logging.NewContext(context.Background(), logger)
	if got := logging.FromContext(ctx); got != logger {
		t.Fatalf("FromContext() returned a different logger")
	}

	ctx = logging.With(ctx, "invocation_id", "abc")
	logging.FromContext(ctx).Info("hello")
	if !strings.Contains(buf.String(), `"invocation_id":"abc"`) {
		t.Errorf("With() attribute missing from output: %s", buf.String())
	}
}

func TestFromContextDefault(t *testing.T) {
	if logging.FromContext(context.Background()) == nil {
		t.Fatal("FromContext() without a logger should return a default logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: " warn ", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  logging.Format
		want    string
		wantErr bool
	}{
		{name: "json", format: logging.FormatJSON, want: `"msg":"hi"`},
		{name: "text", format: logging.FormatText, want: "msg=hi"},
		{name: "default is json", format: "", want: `"msg":"hi"`},
		{name: "unknown", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := logging.New(&buf, tt.format, slog.LevelInfo)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			logger.Info("hi")
			logger.Debug("hidden")
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.want)
			}
			if strings.Contains(buf.String(), "hidden") {
				t.Errorf("debug record written at info level: %q", buf.String())
			}
		})
	}
}
