package calculation

import (
	"bytes"
	"testing"

	"github.com/rpgo/property-projector/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewConsoleLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	quiet := NewConsoleLogger(&buf, false)
	quiet.Debugf("hidden %d", 1)
	quiet.Infof("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "INFO")
	assert.Contains(t, buf.String(), "shown 2")

	buf.Reset()
	verbose := NewConsoleLogger(&buf, true)
	verbose.Debugf("streams %d", 4)
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "streams 4")
}

func TestEngineLoggerDefaults(t *testing.T) {
	e := NewAmortizationEngine(domain.LoanTerms{})
	e.SetLogger(nil)
	assert.IsType(t, NopLogger{}, e.Logger)
}
