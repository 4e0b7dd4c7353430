package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"braces.dev/errtrace"
	"github.com/urfave/cli/v3"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/log"
	"github.com/ghettovoice/httpmsg/message"
	"github.com/ghettovoice/httpmsg/uri"
)

const envLogLevel = "HTTPMSG_LOG_LEVEL"

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "httpmsg",
		Usage:     "inspect URIs and build HTTP request messages",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level: debug, info, warn, error or off",
				Value:   "info",
				Sources: cli.EnvVars(envLogLevel),
			},
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "use the developer log handler",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			uriCommand(),
			requestCommand(),
		},
	}
}

func setupLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	lvl, err := log.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return ctx, errtrace.Wrap(err)
	}

	w := cmd.Root().ErrWriter
	if cmd.Bool("dev") {
		log.SetDefault(slog.New(log.NewDevHandler(w, lvl)))
	} else {
		log.SetDefault(slog.New(log.NewConsoleHandler(w, lvl)))
	}
	return ctx, nil
}

func firstArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("expected exactly one URI argument, got %d", cmd.Args().Len()))
	}
	return cmd.Args().First(), nil
}

type uriInfo struct {
	Scheme    string `json:"scheme"`
	User      string `json:"user,omitempty"`
	Password  string `json:"password,omitempty"`
	Host      string `json:"host"`
	Port      uint16 `json:"port,omitempty"`
	Path      string `json:"path"`
	Query     string `json:"query,omitempty"`
	Fragment  string `json:"fragment,omitempty"`
	Authority string `json:"authority,omitempty"`
	URI       string `json:"uri"`
}

func newURIInfo(u *uri.URI) uriInfo {
	port, _ := u.Port()
	return uriInfo{
		Scheme:    u.Scheme(),
		User:      u.User(),
		Password:  u.Password(),
		Host:      u.Host(),
		Port:      port,
		Path:      u.Path(),
		Query:     u.Query(),
		Fragment:  u.Fragment(),
		Authority: u.Authority(),
		URI:       u.String(),
	}
}

func uriCommand() *cli.Command {
	return &cli.Command{
		Name:      "uri",
		Usage:     "parse a URI and print its components",
		ArgsUsage: "<uri>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print components as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			raw, err := firstArg(cmd)
			if err != nil {
				return errtrace.Wrap(err)
			}

			u, err := uri.Parse(raw)
			if err != nil {
				return errtrace.Wrap(err)
			}
			log.Default().DebugContext(ctx, "uri parsed", "uri", u)

			info := newURIInfo(u)
			w := cmd.Root().Writer
			if cmd.Bool("json") {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return errtrace.Wrap(enc.Encode(info))
			}

			fmt.Fprintf(w, "scheme:    %s\n", info.Scheme)
			fmt.Fprintf(w, "user info: %s\n", u.UserInfo())
			fmt.Fprintf(w, "host:      %s\n", info.Host)
			if info.Port != 0 {
				fmt.Fprintf(w, "port:      %d\n", info.Port)
			}
			fmt.Fprintf(w, "path:      %s\n", info.Path)
			fmt.Fprintf(w, "query:     %s\n", info.Query)
			fmt.Fprintf(w, "fragment:  %s\n", info.Fragment)
			fmt.Fprintf(w, "uri:       %s\n", info.URI)
			return nil
		},
	}
}

func requestCommand() *cli.Command {
	return &cli.Command{
		Name:      "request",
		Usage:     "build a request and print its head",
		ArgsUsage: "<uri>",

		// header values may contain commas, the option is read from the command being run
		DisableSliceFlagSeparator: true,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "method",
				Usage: "request method",
				Value: string(message.RequestMethodGet),
			},
			&cli.StringFlag{
				Name:  "protocol",
				Usage: "protocol version: 2, 1.1 or 1.0",
				Value: message.DefaultProtocolVersion,
			},
			&cli.StringFlag{
				Name:  "target",
				Usage: "explicit request target, e.g. * or an absolute URI",
			},
			&cli.StringSliceFlag{
				Name:  "header",
				Usage: `header field "Name: value", may be repeated`,
			},
			&cli.BoolFlag{
				Name:  "preserve-host",
				Usage: "keep a Host header given with --header",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			raw, err := firstArg(cmd)
			if err != nil {
				return errtrace.Wrap(err)
			}

			u, err := uri.Parse(raw)
			if err != nil {
				return errtrace.Wrap(err)
			}

			req, err := buildRequest(u, cmd.String("method"), cmd.String("protocol"), cmd.String("target"),
				cmd.StringSlice("header"), cmd.Bool("preserve-host"))
			if err != nil {
				return errtrace.Wrap(err)
			}
			log.Default().DebugContext(ctx, "request built", "request", req)

			_, err = req.RenderTo(cmd.Root().Writer, nil)
			return errtrace.Wrap(err)
		},
	}
}

func buildRequest(u *uri.URI, method, proto, target string, hdrs []string, preserveHost bool) (*message.Request, error) {
	req, err := message.NewRequestWithURI(method, u)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if req, err = req.WithProtocolVersion(proto); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if target != "" {
		if req, err = req.WithRequestTarget(target); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}

	for _, h := range hdrs {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("header %q: want \"Name: value\"", h))
		}
		if req, err = req.WithAddedHeader(strings.TrimSpace(name), strings.TrimSpace(value)); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}

	// applied after the headers so that --preserve-host can see a user supplied Host
	if req, err = req.WithURI(u, preserveHost); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return req, nil
}
