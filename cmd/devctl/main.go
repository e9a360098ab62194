package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/lalitbiswal91/device-management/internal/client"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// Version is set using ldflags at build time.
var Version = "dev"

func main() {
	// Override usage to capitalize "Show"
	cli.HelpFlag.(*cli.BoolFlag).Usage = "Show help"
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "devctl",
		Usage: "controls the device management api",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Value:   false,
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("DEVCTL_DEBUG"),
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Config file, defaults to $HOME/.config/devctl/devctl.yaml",
			},
			&cli.StringFlag{
				Name:  "service-url",
				Usage: "Api server URL (default " + defaultServiceURL + ")",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Output format: json, json-raw, no-header, column (default columns)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout of each api request",
			},
			&cli.BoolFlag{
				Name:  "insecure-skip-tls-verify",
				Value: false,
				Usage: "If true, server certificates will not be checked for validity. This will make your HTTPS connections insecure",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Get the version of devctl",
				Action: func(ctx context.Context, command *cli.Command) error {
					_, err := fmt.Fprintf(command.Root().Writer, "version: %s\n", Version)
					return err
				},
			},
			{
				Name:  "ready",
				Usage: "Check that the api server can serve requests",
				Action: func(ctx context.Context, command *cli.Command) error {
					c, err := newCtl(ctx, command)
					if err != nil {
						return err
					}
					if err := c.client.Ready(ctx); err != nil {
						return err
					}
					_, err = fmt.Fprintln(c.out, "ready")
					return err
				},
			},
			createDeviceCommand(),
		},
	}
}

// ctl is the state shared by every command that talks to the api server.
type ctl struct {
	config *config
	client *client.Client
	out    io.Writer
}

func newCtl(ctx context.Context, command *cli.Command) (*ctl, error) {
	cfg, err := loadConfig(command.String("config"))
	if err != nil {
		return nil, err
	}
	// flags win over the config file and the environment
	if command.IsSet("service-url") {
		cfg.ServiceURL = command.String("service-url")
	}
	if command.IsSet("output") {
		cfg.Output = command.String("output")
	}
	if command.IsSet("timeout") {
		cfg.Timeout = command.Duration("timeout")
	}
	if command.IsSet("insecure-skip-tls-verify") {
		cfg.InsecureSkipTLSVerify = command.Bool("insecure-skip-tls-verify")
	}
	if err := validateOutput(cfg.Output); err != nil {
		return nil, err
	}

	options := []client.Option{
		client.WithUserAgent(fmt.Sprintf("devctl/%s (%s; %s)", Version, runtime.GOOS, runtime.GOARCH)),
		client.WithTimeout(cfg.Timeout),
	}
	if cfg.InsecureSkipTLSVerify { // #nosec G402
		options = append(options, client.WithTLSConfig(&tls.Config{
			InsecureSkipVerify: true,
		}))
	}
	if command.Bool("debug") {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		options = append(options, client.WithLogger(logger.Sugar(), true))
	}

	c, err := client.NewClient(ctx, cfg.ServiceURL, options...)
	if err != nil {
		return nil, err
	}
	return &ctl{
		config: cfg,
		client: c,
		out:    command.Root().Writer,
	}, nil
}

func (c *ctl) show(fields []TableField, result any) error {
	return showOutput(c.out, c.config.Output, fields, result)
}
