package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestResolveLevel(t *testing.T) {
	require.Equal(t, log.DebugLevel, resolveLevel(""))
	require.Equal(t, log.WarnLevel, resolveLevel("warn"))
	require.Equal(t, log.DebugLevel, resolveLevel("not-a-level"))
}

func TestGetLogger_AddsCallerFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	GetLogger().Info("hello")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "hello", line["msg"])
	require.Contains(t, line["function"], "TestGetLogger_AddsCallerFields")
	require.Contains(t, line, "line")
}
