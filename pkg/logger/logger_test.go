package logger

import (
	"bytes"
	"testing"

	"github.com/OFFIS-RIT/provgraph/pkg/logger/console"

	"github.com/stretchr/testify/assert"
)

func TestLoggerFansOutWithKeyvals(t *testing.T) {
	var a, b bytes.Buffer
	Init(
		console.NewConsoleLogger(console.ConsoleLoggerParams{Writer: &a, NoTimestamp: true}),
		console.NewConsoleLogger(console.ConsoleLoggerParams{Writer: &b, NoTimestamp: true, Debug: true}),
	)
	t.Cleanup(func() { Init() })

	Info("[Graph] Built", "nodes", 3)
	Debug("[Graph] Omissions", "omitted", 1)
	Log("[Graph] Plain", "edges", 2)

	assert.Contains(t, a.String(), "[Graph] Built nodes=3")
	assert.NotContains(t, a.String(), "Omissions")
	assert.Contains(t, a.String(), "[Graph] Plain edges=2")

	assert.Contains(t, b.String(), "[Graph] Built nodes=3")
	assert.Contains(t, b.String(), "[Graph] Omissions omitted=1")
}

func TestLoggerWithoutInitIsSilent(t *testing.T) {
	Init()
	assert.NotPanics(t, func() {
		Info("nothing")
		Warn("nothing")
		Error("nothing")
		Debug("nothing")
	})
}
