package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogUsableBeforeSetup(t *testing.T) {
	assert.NotNil(t, Log)

	// Degraded-mode code paths log before Setup runs; none may panic
	assert.NotPanics(t, func() {
		Info("mensaje informativo", "k", "v")
		Warn("advertencia")
		Error("error", "err", "detalle")
		Debug("detalle")
	})
}

func TestSetupReplacesGlobal(t *testing.T) {
	before := Log
	Setup("development")
	assert.NotNil(t, Log)
	assert.NotSame(t, before, Log)
}
