package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lalitbiswal91/device-management/internal/devices"
	"github.com/lalitbiswal91/device-management/internal/devicestore/memds"
	"github.com/lalitbiswal91/device-management/internal/handlers"
	"github.com/lalitbiswal91/device-management/internal/models"
	"github.com/lalitbiswal91/device-management/internal/routers"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

type ClientTestSuite struct {
	suite.Suite
	server *httptest.Server
	client *Client
	ctx    context.Context
}

func (suite *ClientTestSuite) SetupTest() {
	suite.ctx = context.Background()
	logger := zaptest.NewLogger(suite.T()).Sugar()

	api, err := handlers.NewAPI(suite.ctx, logger, devices.NewService(logger, memds.New()))
	suite.Require().NoError(err)
	router, err := routers.NewAPIRouter(suite.ctx, routers.APIRouterOptions{
		Logger: logger,
		Api:    api,
	})
	suite.Require().NoError(err)
	suite.server = httptest.NewServer(router)

	suite.client, err = NewClient(suite.ctx, suite.server.URL+"/", WithLogger(logger, false))
	suite.Require().NoError(err)
}

func (suite *ClientTestSuite) TearDownTest() {
	suite.server.Close()
}

func ptr(s string) *string {
	return &s
}

func (suite *ClientTestSuite) TestDeviceLifecycle() {
	require := suite.Require()

	require.NoError(suite.client.Ready(suite.ctx))

	added, err := suite.client.AddDevice(suite.ctx, models.AddDevice{Name: "IPhone", Brand: "Apple"})
	require.NoError(err)
	require.NotZero(added.ID)
	require.False(added.CreationTime.IsZero())

	device, err := suite.client.GetDevice(suite.ctx, added.ID)
	require.NoError(err)
	require.NotNil(device)
	require.Equal("IPhone", device.Name)

	updated, err := suite.client.UpdateDevice(suite.ctx, added.ID, models.UpdateDevice{Brand: ptr("Samsung")})
	require.NoError(err)
	require.Equal("IPhone", updated.Name)
	require.Equal("Samsung", updated.Brand)
	require.True(added.CreationTime.Equal(updated.CreationTime))

	list, err := suite.client.ListDevices(suite.ctx)
	require.NoError(err)
	require.Len(list, 1)

	found, err := suite.client.SearchDevices(suite.ctx, "Samsung")
	require.NoError(err)
	require.Len(found, 1)
	found, err = suite.client.SearchDevices(suite.ctx, "Apple")
	require.NoError(err)
	require.Empty(found)

	require.NoError(suite.client.DeleteDevice(suite.ctx, added.ID))
	require.NoError(suite.client.DeleteDevice(suite.ctx, added.ID))

	device, err = suite.client.GetDevice(suite.ctx, added.ID)
	require.NoError(err)
	require.Nil(device)
}

func (suite *ClientTestSuite) TestErrors() {
	require := suite.Require()

	_, err := suite.client.AddDevice(suite.ctx, models.AddDevice{Name: "IPhone"})
	var responseError *ResponseError
	require.True(errors.As(err, &responseError), "unexpected error %v", err)
	require.Equal(http.StatusBadRequest, responseError.StatusCode)
	require.Equal(map[string]string{
		"brand": "Device brand is mandatory and cannot be empty or null",
	}, responseError.Fields)
	require.Equal("error: brand: Device brand is mandatory and cannot be empty or null, status: 400", err.Error())

	_, err = suite.client.UpdateDevice(suite.ctx, 77, models.UpdateDevice{Name: ptr("Galaxy")})
	require.True(errors.As(err, &responseError))
	require.Equal(http.StatusNotFound, responseError.StatusCode)
	require.Equal("Device not found with Id: 77", responseError.Message)
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestNewClientOptions(t *testing.T) {
	ctx := context.Background()
	_, err := NewClient(ctx, "ftp://localhost")
	if err == nil {
		t.Fatal("expected an error for a non http url")
	}
	_, err = NewClient(ctx, "http://localhost", WithTimeout(0))
	if err == nil {
		t.Fatal("expected an error for a zero timeout")
	}
	_, err = NewClient(ctx, "http://localhost", WithRetries(-1))
	if err == nil {
		t.Fatal("expected an error for a negative retry count")
	}
	c, err := NewClient(ctx, "http://localhost:8080/", WithUserAgent("test"), WithRetries(2))
	if err != nil {
		t.Fatal(err)
	}
	if c.BaseURL().String() != "http://localhost:8080" {
		t.Fatalf("unexpected base url %s", c.BaseURL())
	}
}
