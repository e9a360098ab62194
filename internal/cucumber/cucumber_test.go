package cucumber

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newScenario(t *testing.T) *TestScenario {
	return &TestScenario{
		Suite:     NewTestSuite(t, "http://localhost:8080"),
		Variables: map[string]interface{}{},
	}
}

func TestExpand(t *testing.T) {
	s := newScenario(t)
	s.Variables["device_id"] = float64(42)
	s.Variables["brand"] = `Apple "Inc"`
	s.Session().SetRespBytes([]byte(`{"id": 7, "name": "IPhone"}`))

	actual, err := s.Expand(`/api/devices/${device_id}?x=$brand`)
	require.NoError(t, err)
	require.Equal(t, `/api/devices/42?x=Apple "Inc"`, actual)

	actual, err = s.Expand(`{"brand":"${brand | json_escape}","id":${response.id}}`)
	require.NoError(t, err)
	require.Equal(t, `{"brand":"Apple \"Inc\"","id":7}`, actual)

	_, err = s.Expand(`${missing}`)
	require.Error(t, err)
}

func TestJsonMustContain(t *testing.T) {
	s := newScenario(t)
	actual := `{"id": 1, "name": "IPhone", "brand": "Apple"}`
	require.NoError(t, s.JsonMustContain(actual, `{"name": "IPhone"}`, false))
	require.Error(t, s.JsonMustContain(actual, `{"name": "Galaxy"}`, false))
}

func TestJsonMustMatch(t *testing.T) {
	s := newScenario(t)
	require.NoError(t, s.JsonMustMatch(`{"a":1,"b":[1,2]}`, `{"b":[1,2],"a":1}`, false))
	require.Error(t, s.JsonMustMatch(`{"a":1}`, `{"a":2}`, false))
	require.NoError(t, s.YamlMustMatch(`{"name":"IPhone"}`, "name: IPhone\n", false))
}
