package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lalitbiswal91/device-management/internal/models"
)

const devicesPath = "/api/devices"

func (c *Client) AddDevice(ctx context.Context, request models.AddDevice) (*models.Device, error) {
	var device models.Device
	resp, err := c.request(ctx).
		SetBody(request).
		SetResult(&device).
		Post(devicesPath + "/add-device")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, decodeError(resp)
	}
	return &device, nil
}

// GetDevice returns nil when the server has no device with the given id.
func (c *Client) GetDevice(ctx context.Context, id uint64) (*models.Device, error) {
	var device models.Device
	resp, err := c.request(ctx).
		SetPathParam("id", strconv.FormatUint(id, 10)).
		SetResult(&device).
		Get(devicesPath + "/{id}")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, decodeError(resp)
	}
	if resp.StatusCode() == http.StatusNoContent {
		return nil, nil
	}
	return &device, nil
}

func (c *Client) ListDevices(ctx context.Context) ([]models.Device, error) {
	devices := []models.Device{}
	resp, err := c.request(ctx).
		SetResult(&devices).
		Get(devicesPath + "/all-devices")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, decodeError(resp)
	}
	return devices, nil
}

func (c *Client) UpdateDevice(ctx context.Context, id uint64, request models.UpdateDevice) (*models.Device, error) {
	var device models.Device
	resp, err := c.request(ctx).
		SetPathParam("id", strconv.FormatUint(id, 10)).
		SetBody(request).
		SetResult(&device).
		Put(devicesPath + "/{id}")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, decodeError(resp)
	}
	return &device, nil
}

func (c *Client) DeleteDevice(ctx context.Context, id uint64) error {
	resp, err := c.request(ctx).
		SetPathParam("id", strconv.FormatUint(id, 10)).
		Delete(devicesPath + "/{id}")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return decodeError(resp)
	}
	return nil
}

func (c *Client) SearchDevices(ctx context.Context, brand string) ([]models.Device, error) {
	devices := []models.Device{}
	resp, err := c.request(ctx).
		SetQueryParam("brand", brand).
		SetResult(&devices).
		Get(devicesPath + "/search")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, decodeError(resp)
	}
	return devices, nil
}

// Ready reports whether the server and its device store are up.
func (c *Client) Ready(ctx context.Context) error {
	resp, err := c.request(ctx).Get("/ready")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("server is not ready, status: %d", resp.StatusCode())
	}
	return nil
}
