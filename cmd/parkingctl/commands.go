package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"parking-api/internal/apiclient"
	"parking-api/internal/model"
	"parking-api/internal/parse"
	"parking-api/internal/tokenstore"
	"parking-api/internal/watch"
)

const usage = `usage: parkingctl <command> [flags]

commands:
  login -u USER -p PASSWORD
  logout
  list [-page N] [-size M]
  get ID
  detail ID
  create -f FILE
  update -f FILE ID
  delete ID
  watch [-interval 30s] ID
`

var errUsage = errors.New("usage")

type cli struct {
	client *apiclient.Client
	tokens tokenstore.Store
	out    io.Writer
	stdin  io.Reader
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "login":
		return c.login(ctx, args)
	case "logout":
		return c.tokens.Delete(apiclient.TokenKey)
	case "list":
		return c.list(ctx, args)
	case "get":
		return c.withID(args, func(id int64) error {
			parking, err := c.client.GetParking(ctx, id)
			if err != nil {
				return err
			}
			return c.print(parking)
		})
	case "detail":
		return c.withID(args, func(id int64) error {
			detail, err := c.client.GetParkingDetail(ctx, id)
			if err != nil {
				return err
			}
			return c.print(detail)
		})
	case "create":
		return c.create(ctx, args)
	case "update":
		return c.update(ctx, args)
	case "delete":
		return c.withID(args, func(id int64) error {
			if err := c.client.DeleteParking(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "deleted parking %d\n", id)
			return nil
		})
	case "watch":
		return c.watch(ctx, args)
	default:
		return errUsage
	}
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *username == "" {
		return errUsage
	}

	resp, err := c.client.Login(ctx, model.LoginRequest{Username: *username, Password: *password})
	if err != nil {
		return err
	}
	if err := c.tokens.Set(apiclient.TokenKey, resp.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	fmt.Fprintf(c.out, "logged in as %s until %s\n", *username, resp.ExpiresAt.Local().Format(time.RFC3339))
	return nil
}

func (c *cli) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	page := fs.Int("page", 0, "page number, starting at 1")
	size := fs.Int("size", parse.DefaultPageSize, "page size")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if *page <= 0 {
		parkings, err := c.client.ListParkings(ctx)
		if err != nil {
			return err
		}
		return c.print(parkings)
	}

	resp, err := c.client.PageParkings(ctx, *page, *size)
	if err != nil {
		return err
	}
	return c.print(resp)
}

func (c *cli) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	file := fs.String("f", "", "JSON file with the parking, - for stdin")
	if err := fs.Parse(args); err != nil || *file == "" {
		return errUsage
	}

	var req model.CreateParkingRequest
	if err := c.readJSON(*file, &req); err != nil {
		return err
	}
	parking, err := c.client.CreateParking(ctx, req)
	if err != nil {
		return err
	}
	return c.print(parking)
}

func (c *cli) update(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	file := fs.String("f", "", "JSON file with the fields to change, - for stdin")
	if err := fs.Parse(args); err != nil || *file == "" {
		return errUsage
	}

	return c.withID(fs.Args(), func(id int64) error {
		var req model.UpdateParkingRequest
		if err := c.readJSON(*file, &req); err != nil {
			return err
		}
		parking, err := c.client.UpdateParking(ctx, id, req)
		if err != nil {
			return err
		}
		return c.print(parking)
	})
}

func (c *cli) watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	interval := fs.Duration("interval", 30*time.Second, "poll interval")
	if err := fs.Parse(args); err != nil || *interval <= 0 {
		return errUsage
	}

	return c.withID(fs.Args(), func(id int64) error {
		w := watch.New(c.client, id, *interval, func(ch watch.Change) {
			d := ch.Current
			line := fmt.Sprintf("%s %s: %d/%d spaces available", time.Now().Format(time.TimeOnly), d.Name, d.AvailableSpaces, d.TotalSpaces)
			if ch.BecameAvailable() {
				line += " (spaces freed up)"
			}
			fmt.Fprintln(c.out, line)
		}, nil)
		w.Run(ctx)
		return nil
	})
}

func (c *cli) withID(args []string, fn func(id int64) error) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parse.ParseID(args[0])
	if err != nil {
		return err
	}
	return fn(id)
}

func (c *cli) readJSON(path string, v any) error {
	var r io.Reader
	if path == "-" {
		r = c.stdin
		if r == nil {
			r = os.Stdin
		}
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
