package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lalitbiswal91/device-management/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func (suite *HandlerTestSuite) createDevice(name, brand string) models.Device {
	require := suite.Require()
	reqBody, err := json.Marshal(models.AddDevice{Name: name, Brand: brand})
	require.NoError(err)

	_, res, err := suite.ServeRequest(
		http.MethodPost,
		"/", "/",
		suite.api.CreateDevice, bytes.NewBuffer(reqBody),
	)
	require.NoError(err)

	body, err := io.ReadAll(res.Body)
	require.NoError(err)
	require.Equal(http.StatusOK, res.Code, "HTTP error: %s", string(body))

	var actual models.Device
	require.NoError(json.Unmarshal(body, &actual))
	return actual
}

func (suite *HandlerTestSuite) getDevice(id uint64) (int, []byte) {
	require := suite.Require()
	_, res, err := suite.ServeRequest(
		http.MethodGet, "/:id", fmt.Sprintf("/%d", id),
		suite.api.GetDevice, nil,
	)
	require.NoError(err)
	body, err := io.ReadAll(res.Body)
	require.NoError(err)
	return res.Code, body
}

func (suite *HandlerTestSuite) TestCreateGetDevice() {
	require := suite.Require()
	assert := suite.Assert()

	actual := suite.createDevice("IPhone", "Apple")
	assert.NotZero(actual.ID)
	assert.Equal("IPhone", actual.Name)
	assert.Equal("Apple", actual.Brand)
	assert.True(actual.CreationTime.Equal(testCreated), "creation time %s", actual.CreationTime)

	code, body := suite.getDevice(actual.ID)
	require.Equal(http.StatusOK, code, "HTTP error: %s", string(body))

	var device models.Device
	require.NoError(json.Unmarshal(body, &device))
	assert.Equal(actual.ID, device.ID)
	assert.Equal(actual.Name, device.Name)
	assert.Equal(actual.Brand, device.Brand)
	assert.True(actual.CreationTime.Equal(device.CreationTime))
}

func (suite *HandlerTestSuite) TestCreateDeviceIgnoresClientIDAndTime() {
	require := suite.Require()
	_, res, err := suite.ServeRequest(
		http.MethodPost, "/", "/",
		suite.api.CreateDevice,
		strings.NewReader(`{"id":999,"name":"Galaxy","brand":"Samsung","creationTime":"2000-01-01T00:00:00Z"}`),
	)
	require.NoError(err)
	require.Equal(http.StatusOK, res.Code, "HTTP error: %s", res.Body.String())

	var actual models.Device
	require.NoError(json.Unmarshal(res.Body.Bytes(), &actual))
	require.NotEqual(uint64(999), actual.ID)
	require.True(actual.CreationTime.Equal(testCreated))
}

func (suite *HandlerTestSuite) TestCreateDeviceValidation() {
	tests := []struct {
		name     string
		body     string
		expected models.ValidationErrors
	}{
		{
			name: "missing name",
			body: `{"brand":"Apple"}`,
			expected: models.ValidationErrors{
				"name": "Device name is mandatory and cannot be empty or null",
			},
		},
		{
			name: "blank brand",
			body: `{"name":"IPhone","brand":"   "}`,
			expected: models.ValidationErrors{
				"brand": "Device brand is mandatory and cannot be empty or null",
			},
		},
		{
			name: "both missing",
			body: `{}`,
			expected: models.ValidationErrors{
				"name":  "Device name is mandatory and cannot be empty or null",
				"brand": "Device brand is mandatory and cannot be empty or null",
			},
		},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			require := suite.Require()
			_, res, err := suite.ServeRequest(
				http.MethodPost, "/", "/",
				suite.api.CreateDevice, strings.NewReader(tt.body),
			)
			require.NoError(err)
			require.Equal(http.StatusBadRequest, res.Code)

			var actual models.ValidationErrors
			require.NoError(json.Unmarshal(res.Body.Bytes(), &actual))
			require.Equal(tt.expected, actual)
		})
	}
}

func (suite *HandlerTestSuite) TestCreateDeviceBadJson() {
	require := suite.Require()
	_, res, err := suite.ServeRequest(
		http.MethodPost, "/", "/",
		suite.api.CreateDevice, strings.NewReader(`{"name":`),
	)
	require.NoError(err)
	require.Equal(http.StatusBadRequest, res.Code)
	require.JSONEq(`{"error":"request json is invalid"}`, res.Body.String())
}

func (suite *HandlerTestSuite) TestGetDeviceMissing() {
	require := suite.Require()
	code, body := suite.getDevice(12345)
	require.Equal(http.StatusNoContent, code)
	require.Empty(body)
}

func (suite *HandlerTestSuite) TestBadDeviceID() {
	for _, id := range []string{"abc", "0", "-1", "1.5", "9223372036854775808", "18446744073709551615"} {
		suite.Run(id, func() {
			require := suite.Require()
			_, res, err := suite.ServeRequest(
				http.MethodGet, "/:id", "/"+id,
				suite.api.GetDevice, nil,
			)
			require.NoError(err)
			require.Equal(http.StatusBadRequest, res.Code)
			require.JSONEq(`{"id":"path parameter invalid"}`, res.Body.String())

			_, res, err = suite.ServeRequest(
				http.MethodDelete, "/:id", "/"+id,
				suite.api.DeleteDevice, nil,
			)
			require.NoError(err)
			require.Equal(http.StatusBadRequest, res.Code)
			require.JSONEq(`{"id":"path parameter invalid"}`, res.Body.String())
		})
	}
}

func (suite *HandlerTestSuite) TestLargestDeviceID() {
	require := suite.Require()
	_, res, err := suite.ServeRequest(
		http.MethodGet, "/:id", "/9223372036854775807",
		suite.api.GetDevice, nil,
	)
	require.NoError(err)
	require.Equal(http.StatusNoContent, res.Code)

	_, res, err = suite.ServeRequest(
		http.MethodDelete, "/:id", "/9223372036854775807",
		suite.api.DeleteDevice, nil,
	)
	require.NoError(err)
	require.Equal(http.StatusOK, res.Code)
}

func (suite *HandlerTestSuite) TestListDevices() {
	require := suite.Require()

	_, res, err := suite.ServeRequest(
		http.MethodGet, "/", "/",
		suite.api.ListDevices, nil,
	)
	require.NoError(err)
	require.Equal(http.StatusOK, res.Code)
	require.JSONEq(`[]`, res.Body.String())

	first := suite.createDevice("IPhone", "Apple")
	second := suite.createDevice("Galaxy", "Samsung")

	_, res, err = suite.ServeRequest(
		http.MethodGet, "/", "/",
		suite.api.ListDevices, nil,
	)
	require.NoError(err)
	require.Equal(http.StatusOK, res.Code)

	var actual []models.Device
	require.NoError(json.Unmarshal(res.Body.Bytes(), &actual))
	require.Len(actual, 2)
	require.Equal(first.ID, actual[0].ID)
	require.Equal(second.ID, actual[1].ID)
}

func (suite *HandlerTestSuite) TestUpdateDevice() {
	require := suite.Require()
	device := suite.createDevice("IPhone", "Apple")

	_, res, err := suite.ServeRequest(
		http.MethodPut, "/:id", fmt.Sprintf("/%d", device.ID),
		suite.api.UpdateDevice, strings.NewReader(`{"brand":"Samsung"}`),
	)
	require.NoError(err)
	require.Equal(http.StatusOK, res.Code, "HTTP error: %s", res.Body.String())

	var updated models.Device
	require.NoError(json.Unmarshal(res.Body.Bytes(), &updated))
	require.Equal(device.ID, updated.ID)
	require.Equal("IPhone", updated.Name)
	require.Equal("Samsung", updated.Brand)
	require.True(device.CreationTime.Equal(updated.CreationTime))

	_, res, err = suite.ServeRequest(
		http.MethodPut, "/:id", fmt.Sprintf("/%d", device.ID),
		suite.api.UpdateDevice, strings.NewReader(`{"name":"Galaxy S24","brand":"Samsung"}`),
	)
	require.NoError(err)
	require.Equal(http.StatusOK, res.Code)

	code, body := suite.getDevice(device.ID)
	require.Equal(http.StatusOK, code)
	var fetched models.Device
	require.NoError(json.Unmarshal(body, &fetched))
	require.Equal("Galaxy S24", fetched.Name)
	require.Equal("Samsung", fetched.Brand)
}

func (suite *HandlerTestSuite) TestUpdateDeviceEmptyBody() {
	require := suite.Require()
	device := suite.createDevice("IPhone", "Apple")

	_, res, err := suite.ServeRequest(
		http.MethodPut, "/:id", fmt.Sprintf("/%d", device.ID),
		suite.api.UpdateDevice, strings.NewReader(`{}`),
	)
	require.NoError(err)
	require.Equal(http.StatusOK, res.Code)

	var updated models.Device
	require.NoError(json.Unmarshal(res.Body.Bytes(), &updated))
	require.Equal("IPhone", updated.Name)
	require.Equal("Apple", updated.Brand)
}

func (suite *HandlerTestSuite) TestUpdateDeviceBlankField() {
	require := suite.Require()
	device := suite.createDevice("IPhone", "Apple")

	_, res, err := suite.ServeRequest(
		http.MethodPut, "/:id", fmt.Sprintf("/%d", device.ID),
		suite.api.UpdateDevice, strings.NewReader(`{"name":" "}`),
	)
	require.NoError(err)
	require.Equal(http.StatusBadRequest, res.Code)
	require.JSONEq(`{"name":"Device name cannot be blank"}`, res.Body.String())

	code, body := suite.getDevice(device.ID)
	require.Equal(http.StatusOK, code)
	var fetched models.Device
	require.NoError(json.Unmarshal(body, &fetched))
	require.Equal("IPhone", fetched.Name)
}

func (suite *HandlerTestSuite) TestUpdateDeviceMissing() {
	require := suite.Require()
	_, res, err := suite.ServeRequest(
		http.MethodPut, "/:id", "/4242",
		suite.api.UpdateDevice, strings.NewReader(`{"name":"Galaxy"}`),
	)
	require.NoError(err)
	require.Equal(http.StatusNotFound, res.Code)
	require.JSONEq(`{"error":"Device not found with Id: 4242","resource":"device"}`, res.Body.String())
}

func (suite *HandlerTestSuite) TestDeleteDevice() {
	require := suite.Require()
	device := suite.createDevice("IPhone", "Apple")

	for i := 0; i < 2; i++ {
		_, res, err := suite.ServeRequest(
			http.MethodDelete, "/:id", fmt.Sprintf("/%d", device.ID),
			suite.api.DeleteDevice, nil,
		)
		require.NoError(err)
		require.Equal(http.StatusOK, res.Code)
		require.Empty(res.Body.Bytes())
	}

	code, _ := suite.getDevice(device.ID)
	require.Equal(http.StatusNoContent, code)
}

func (suite *HandlerTestSuite) TestSearchDevices() {
	require := suite.Require()
	apple := suite.createDevice("IPhone", "Apple")
	suite.createDevice("Galaxy", "Samsung")
	mac := suite.createDevice("MacBook", "Apple")

	_, res, err := suite.ServeRequest(
		http.MethodGet, "/search", "/search?brand=Apple",
		suite.api.SearchDevices, nil,
	)
	require.NoError(err)
	require.Equal(http.StatusOK, res.Code)

	var actual []models.Device
	require.NoError(json.Unmarshal(res.Body.Bytes(), &actual))
	require.Len(actual, 2)
	require.Equal(apple.ID, actual[0].ID)
	require.Equal(mac.ID, actual[1].ID)

	_, res, err = suite.ServeRequest(
		http.MethodGet, "/search", "/search?brand=apple",
		suite.api.SearchDevices, nil,
	)
	require.NoError(err)
	require.Equal(http.StatusOK, res.Code)
	require.JSONEq(`[]`, res.Body.String())
}

func (suite *HandlerTestSuite) TestSearchDevicesMissingBrand() {
	require := suite.Require()
	_, res, err := suite.ServeRequest(
		http.MethodGet, "/search", "/search",
		suite.api.SearchDevices, nil,
	)
	require.NoError(err)
	require.Equal(http.StatusBadRequest, res.Code)
	require.JSONEq(`{"brand":"query parameter is required"}`, res.Body.String())
}

func (suite *HandlerTestSuite) TestHealth() {
	require := suite.Require()
	_, res, err := suite.ServeRequest(http.MethodGet, "/ready", "/ready", suite.api.Ready, nil)
	require.NoError(err)
	require.Equal(http.StatusOK, res.Code)
	require.JSONEq(`{"status":"UP"}`, res.Body.String())

	_, res, err = suite.ServeRequest(http.MethodGet, "/live", "/live", suite.api.Live, nil)
	require.NoError(err)
	require.Equal(http.StatusOK, res.Code)
	require.JSONEq(`{"status":"UP"}`, res.Body.String())
}

// failingService fails every call with err and counts the adds it received.
type failingService struct {
	err  error
	adds int
}

func (f *failingService) Add(context.Context, models.AddDevice) (*models.Device, error) {
	f.adds++
	return nil, f.err
}

func (f *failingService) Get(context.Context, uint64) (*models.Device, error) {
	return nil, f.err
}

func (f *failingService) List(context.Context) ([]*models.Device, error) {
	return nil, f.err
}

func (f *failingService) Update(context.Context, uint64, models.UpdateDevice) (*models.Device, error) {
	return nil, f.err
}

func (f *failingService) Delete(context.Context, uint64) error {
	return f.err
}

func (f *failingService) SearchByBrand(context.Context, string) ([]*models.Device, error) {
	return nil, f.err
}

func (f *failingService) Ping(context.Context) error {
	return f.err
}

func TestStoreFailures(t *testing.T) {
	service := &failingService{err: errors.New("connection refused")}
	api, err := NewAPI(context.Background(), zaptest.NewLogger(t).Sugar(), service)
	require.NoError(t, err)

	_, res, err := serveRequest(http.MethodPost, "/", "/", api.CreateDevice, strings.NewReader(`{"name":"IPhone","brand":"Apple"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, res.Code)
	require.JSONEq(t, `{"error":"connection refused"}`, res.Body.String())
	require.Equal(t, 1, service.adds)

	_, res, err = serveRequest(http.MethodPost, "/", "/", api.CreateDevice, strings.NewReader(`{"brand":"Apple"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, res.Code)
	require.Equal(t, 1, service.adds)

	requests := []struct {
		method  string
		path    string
		uri     string
		body    string
		handler gin.HandlerFunc
	}{
		{http.MethodGet, "/:id", "/1", "", api.GetDevice},
		{http.MethodGet, "/", "/", "", api.ListDevices},
		{http.MethodPut, "/:id", "/1", `{"name":"Galaxy"}`, api.UpdateDevice},
		{http.MethodDelete, "/:id", "/1", "", api.DeleteDevice},
		{http.MethodGet, "/search", "/search?brand=Apple", "", api.SearchDevices},
	}
	for _, r := range requests {
		var body io.Reader
		if r.body != "" {
			body = strings.NewReader(r.body)
		}
		_, res, err = serveRequest(r.method, r.path, r.uri, r.handler, body)
		require.NoError(t, err)
		require.Equal(t, http.StatusInternalServerError, res.Code, "%s %s", r.method, r.uri)
		require.JSONEq(t, `{"error":"connection refused"}`, res.Body.String())
	}

	service.err = fmt.Errorf("fetching device 1: %w", fmt.Errorf("query: %w", errors.New("connection refused")))
	_, res, err = serveRequest(http.MethodGet, "/:id", "/1", api.GetDevice, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, res.Code)
	require.JSONEq(t, `{"error":"connection refused"}`, res.Body.String())

	_, res, err = serveRequest(http.MethodGet, "/ready", "/ready", api.Ready, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, res.Code)
	require.JSONEq(t, `{"status":"DOWN"}`, res.Body.String())
}
