package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var cmdLs = &cli.Command{
	Name:  "ls",
	Usage: "list every template key in the bucket",
	Action: func(cctx *cli.Context) error {
		r, err := newResolver(cctx)
		if err != nil {
			return err
		}
		if err := r.Refresh(cctx.Context); err != nil {
			return err
		}
		for _, key := range r.Keys() {
			fmt.Println(key)
		}
		return nil
	},
}

var cmdCat = &cli.Command{
	Name:      "cat",
	Usage:     "print a template's content to stdout",
	ArgsUsage: "<name>",
	Action: func(cctx *cli.Context) error {
		name := cctx.Args().First()
		if name == "" {
			return fmt.Errorf("usage: s3tpl cat <name>")
		}
		r, err := newResolver(cctx)
		if err != nil {
			return err
		}
		data, _, err := r.Content(cctx.Context, name)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var cmdStat = &cli.Command{
	Name:      "stat",
	Usage:     "show whether a template exists and when it changed",
	ArgsUsage: "<name>",
	Action: func(cctx *cli.Context) error {
		name := cctx.Args().First()
		if name == "" {
			return fmt.Errorf("usage: s3tpl stat <name>")
		}
		r, err := newResolver(cctx)
		if err != nil {
			return err
		}
		mt, ok, err := r.ModifiedTime(cctx.Context, name)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("%s: not found\n", name)
			return nil
		}
		obj, err := r.Resolve(cctx.Context, name)
		if err != nil {
			return err
		}
		fmt.Printf("%s: key=%s modified=%s\n", name, obj.Key(), mt.Format("2006-01-02T15:04:05Z07:00"))
		return nil
	},
}
