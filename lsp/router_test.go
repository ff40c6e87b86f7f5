// Copyright © 2025 The cssls authors

package lsp

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/commonlog"

	"github.com/luthersystems/cssls/css"
)

// recordingLogger captures notice and error messages. Only the methods
// exercised by the code under test are overridden.
type recordingLogger struct {
	commonlog.Logger
	mu      sync.Mutex
	notices []string
	errors  []string
}

func (l *recordingLogger) Noticef(format string, args ...any) {
	l.mu.Lock()
	l.notices = append(l.notices, fmt.Sprintf(format, args...))
	l.mu.Unlock()
}

func (l *recordingLogger) Errorf(format string, args ...any) {
	l.mu.Lock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
	l.mu.Unlock()
}

func (l *recordingLogger) noticeCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.notices)
}

func (l *recordingLogger) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

func TestRouterDialects(t *testing.T) {
	r := NewRouter(&recordingLogger{})
	assert.Equal(t, css.DialectCSS, r.Engine("css").Dialect())
	assert.Equal(t, css.DialectSCSS, r.Engine("scss").Dialect())
	assert.Equal(t, css.DialectLESS, r.Engine("less").Dialect())
}

func TestRouterFallback(t *testing.T) {
	log := &recordingLogger{}
	r := NewRouter(log)

	engine := r.Engine("stylus")
	require.NotNil(t, engine)
	assert.Equal(t, css.DialectCSS, engine.Dialect())
	assert.Equal(t, 1, log.noticeCount())
	assert.Contains(t, log.notices[0], "stylus")

	// Repeated lookups for the same unknown dialect stay quiet.
	r.Engine("stylus")
	r.Engine("stylus")
	assert.Equal(t, 1, log.noticeCount())

	// A different unknown dialect gets its own notice.
	r.Engine("sass")
	assert.Equal(t, 2, log.noticeCount())
}

func TestRouterConfigure(t *testing.T) {
	r := NewRouter(&recordingLogger{})

	scss := css.DefaultSettings()
	scss.Lint.UnknownProperties = css.LintError
	r.Configure(&ServerSettings{SCSS: scss})

	assert.Equal(t, css.LintError, r.Engine("scss").Settings().Lint.UnknownProperties)
	// Dialects without a section fall back to defaults.
	assert.Equal(t, css.LintWarning, r.Engine("css").Settings().Lint.UnknownProperties)

	t.Run("nil restores defaults", func(t *testing.T) {
		r.Configure(nil)
		assert.Equal(t, css.LintWarning, r.Engine("scss").Settings().Lint.UnknownProperties)
	})
}
