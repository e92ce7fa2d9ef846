package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityFromLevel(t *testing.T) {
	assert.Equal(t, SeverityTrace, SeverityFromLevel(5))
	assert.Equal(t, SeverityTrace, SeverityFromLevel(10))
	assert.Equal(t, SeverityDebug, SeverityFromLevel(20))
	assert.Equal(t, SeverityInfo, SeverityFromLevel(25))
	assert.Equal(t, SeverityInfo, SeverityFromLevel(30))
	assert.Equal(t, SeverityWarn, SeverityFromLevel(40))
	assert.Equal(t, SeverityError, SeverityFromLevel(50))
	assert.Equal(t, SeverityFatal, SeverityFromLevel(60))
	assert.Equal(t, SeverityFatal, SeverityFromLevel(100))
}

func TestParseSeverity(t *testing.T) {
	assert.Equal(t, SeverityTrace, ParseSeverity("trace"))
	assert.Equal(t, SeverityWarn, ParseSeverity("WARNING"))
	assert.Equal(t, SeverityError, ParseSeverity("Error"))
	assert.Equal(t, SeverityFatal, ParseSeverity("critical"))
	assert.Equal(t, SeverityInfo, ParseSeverity("verbose"), "unknown names default to info")
}
