// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

func TestWatermillLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	adapter := NewWatermillLoggerWith(zerolog.New(&buf).Level(zerolog.TraceLevel))

	child := adapter.With(watermill.LogFields{"topic": "recommendation.served"})
	child.Info("subscribed", watermill.LogFields{"handler": "popularity"})
	child.Error("handler failed", errors.New("boom"), nil)
	child.Trace("tick", nil)

	output := buf.String()
	for _, want := range []string{
		`"topic":"recommendation.served"`,
		`"handler":"popularity"`,
		`"error":"boom"`,
		`"message":"tick"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in %s", want, output)
		}
	}
}
