package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lalitbiswal91/device-management/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDevices = []models.Device{
	{ID: 1, Name: "IPhone", Brand: "Apple", CreationTime: time.Date(2024, 10, 14, 8, 30, 0, 0, time.UTC)},
	{ID: 2, Name: "Galaxy", Brand: "Samsung", CreationTime: time.Date(2024, 10, 15, 9, 0, 0, 0, time.UTC)},
}

func TestShowOutputJson(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, showOutput(out, encodeJsonRaw, deviceTableFields(), testDevices[0]))
	assert.Equal(t, `{"id":1,"name":"IPhone","brand":"Apple","creationTime":"2024-10-14T08:30:00Z"}`+"\n", out.String())

	out.Reset()
	require.NoError(t, showOutput(out, encodeJsonPretty, deviceTableFields(), []models.Device{}))
	assert.Equal(t, "[]\n", out.String())
}

func TestShowOutputColumns(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, showOutput(out, encodeColumn, deviceTableFields(), testDevices))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	// header, separator and one line per device
	require.Len(t, lines, 4)
	for _, header := range []string{"ID", "NAME", "BRAND", "CREATION TIME"} {
		assert.Contains(t, lines[0], header)
	}
	assert.Contains(t, lines[2], "IPhone")
	assert.Contains(t, lines[2], "Apple")
	assert.Contains(t, lines[3], "Galaxy")
	assert.Contains(t, lines[3], testDevices[1].CreationTime.Local().Format(LocalTimeFormat))

	out.Reset()
	require.NoError(t, showOutput(out, encodeNoHeader, deviceTableFields(), &testDevices[0]))
	lines = strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	assert.NotContains(t, lines[0], "BRAND")
	assert.Contains(t, lines[0], "Apple")
}

func TestShowOutputErrors(t *testing.T) {
	out := &bytes.Buffer{}
	assert.EqualError(t, showOutput(out, "xml", deviceTableFields(), testDevices), "unknown --output option: xml")
	assert.EqualError(t, showOutput(out, encodeColumn, []TableField{{Header: "X", Field: "Missing"}}, testDevices), "field Missing not found")
	assert.Error(t, showOutput(out, encodeColumn, []TableField{{Header: "X"}}, testDevices))
}

func TestShowOutputFormatter(t *testing.T) {
	out := &bytes.Buffer{}
	fields := []TableField{{
		Header: "LABEL",
		Formatter: func(item interface{}) string {
			d := item.(models.Device)
			return d.Brand + "/" + d.Name
		},
	}}
	require.NoError(t, showOutput(out, encodeNoHeader, fields, testDevices))
	assert.Contains(t, out.String(), "Apple/IPhone")
	assert.Contains(t, out.String(), "Samsung/Galaxy")
}
