package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lalitbiswal91/device-management/internal/models"
	"github.com/urfave/cli/v3"
)

func deviceTableFields() []TableField {
	return []TableField{
		{Header: "ID", Field: "ID"},
		{Header: "NAME", Field: "Name"},
		{Header: "BRAND", Field: "Brand"},
		{Header: "CREATION TIME", Field: "CreationTime"},
	}
}

func createDeviceCommand() *cli.Command {
	return &cli.Command{
		Name:  "device",
		Usage: "Commands relating to devices",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a device",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "brand",
						Required: true,
					},
				},
				Action: func(ctx context.Context, command *cli.Command) error {
					return addDevice(ctx, command, command.String("name"), command.String("brand"))
				},
			},
			{
				Name:  "get",
				Usage: "Get a device",
				Flags: []cli.Flag{newIDFlag()},
				Action: func(ctx context.Context, command *cli.Command) error {
					id, err := getDeviceID(command)
					if err != nil {
						return err
					}
					return getDevice(ctx, command, id)
				},
			},
			{
				Name:  "list",
				Usage: "List all devices",
				Action: func(ctx context.Context, command *cli.Command) error {
					return listDevices(ctx, command)
				},
			},
			{
				Name:  "update",
				Usage: "Update the name or brand of a device",
				Flags: []cli.Flag{
					newIDFlag(),
					&cli.StringFlag{
						Name: "name",
					},
					&cli.StringFlag{
						Name: "brand",
					},
				},
				Action: func(ctx context.Context, command *cli.Command) error {
					id, err := getDeviceID(command)
					if err != nil {
						return err
					}
					update := models.UpdateDevice{}
					if command.IsSet("name") {
						name := command.String("name")
						update.Name = &name
					}
					if command.IsSet("brand") {
						brand := command.String("brand")
						update.Brand = &brand
					}
					return updateDevice(ctx, command, id, update)
				},
			},
			{
				Name:  "delete",
				Usage: "Delete a device",
				Flags: []cli.Flag{newIDFlag()},
				Action: func(ctx context.Context, command *cli.Command) error {
					id, err := getDeviceID(command)
					if err != nil {
						return err
					}
					return deleteDevice(ctx, command, id)
				},
			},
			{
				Name:  "search",
				Usage: "List the devices of a brand",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "brand",
						Required: true,
					},
				},
				Action: func(ctx context.Context, command *cli.Command) error {
					return searchDevices(ctx, command, command.String("brand"))
				},
			},
		},
	}
}

func newIDFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "id",
		Usage:    "Device id",
		Required: true,
	}
}

func getDeviceID(command *cli.Command) (uint64, error) {
	value := command.String("id")
	id, err := strconv.ParseUint(value, 10, 63)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid --id %q: must be a positive integer", value)
	}
	return id, nil
}

func addDevice(ctx context.Context, command *cli.Command, name, brand string) error {
	c, err := newCtl(ctx, command)
	if err != nil {
		return err
	}
	device, err := c.client.AddDevice(ctx, models.AddDevice{Name: name, Brand: brand})
	if err != nil {
		return err
	}
	return c.show(deviceTableFields(), device)
}

func getDevice(ctx context.Context, command *cli.Command, id uint64) error {
	c, err := newCtl(ctx, command)
	if err != nil {
		return err
	}
	device, err := c.client.GetDevice(ctx, id)
	if err != nil {
		return err
	}
	if device == nil {
		return fmt.Errorf("device %d not found", id)
	}
	return c.show(deviceTableFields(), device)
}

func listDevices(ctx context.Context, command *cli.Command) error {
	c, err := newCtl(ctx, command)
	if err != nil {
		return err
	}
	devices, err := c.client.ListDevices(ctx)
	if err != nil {
		return err
	}
	return c.show(deviceTableFields(), devices)
}

func updateDevice(ctx context.Context, command *cli.Command, id uint64, update models.UpdateDevice) error {
	c, err := newCtl(ctx, command)
	if err != nil {
		return err
	}
	device, err := c.client.UpdateDevice(ctx, id, update)
	if err != nil {
		return err
	}
	return c.show(deviceTableFields(), device)
}

func deleteDevice(ctx context.Context, command *cli.Command, id uint64) error {
	c, err := newCtl(ctx, command)
	if err != nil {
		return err
	}
	if err := c.client.DeleteDevice(ctx, id); err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.out, "successfully deleted device %d\n", id)
	return err
}

func searchDevices(ctx context.Context, command *cli.Command, brand string) error {
	c, err := newCtl(ctx, command)
	if err != nil {
		return err
	}
	devices, err := c.client.SearchDevices(ctx, brand)
	if err != nil {
		return err
	}
	return c.show(deviceTableFields(), devices)
}
