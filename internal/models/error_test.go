package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	e := NewNotFoundError("device", "Device not found with Id: 42")
	b, err := json.Marshal(e)
	require.NoError(t, err)
	require.Equal(t, `{"error":"Device not found with Id: 42","resource":"device"}`, string(b))
}

func TestValidationErrors(t *testing.T) {
	e := NewFieldValidationError("name", "Device name is mandatory and cannot be empty or null")
	e["brand"] = "Device brand is mandatory and cannot be empty or null"
	b, err := json.Marshal(e)
	require.NoError(t, err)
	require.Equal(t, `{"brand":"Device brand is mandatory and cannot be empty or null","name":"Device name is mandatory and cannot be empty or null"}`, string(b))
}

func TestBadPathParameterError(t *testing.T) {
	b, err := json.Marshal(NewBadPathParameterError("id"))
	require.NoError(t, err)
	require.Equal(t, `{"id":"path parameter invalid"}`, string(b))
}

func TestInternalServerError(t *testing.T) {
	b, err := json.Marshal(NewInternalServerError("connection refused", ""))
	require.NoError(t, err)
	require.Equal(t, `{"error":"connection refused"}`, string(b))

	b, err = json.Marshal(NewInternalServerError("connection refused", "4bf92f3577b34da6a3ce929d0e0e4736"))
	require.NoError(t, err)
	require.Equal(t, `{"error":"connection refused","trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"}`, string(b))
}

func TestDeviceJson(t *testing.T) {
	var update UpdateDevice
	require.NoError(t, json.Unmarshal([]byte(`{"brand":"Samsung"}`), &update))
	require.Nil(t, update.Name)
	require.NotNil(t, update.Brand)
	require.Equal(t, "Samsung", *update.Brand)

	require.NoError(t, json.Unmarshal([]byte(`{"name":""}`), &update))
	require.NotNil(t, update.Name)
	require.Equal(t, "", *update.Name)
}
