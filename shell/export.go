package shell

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/abiosoft/ishell"
	flag "github.com/ogier/pflag"
)

func exportCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "export",
		Help: "write the drawing as png, usage: export [--full] <file.png>",
		LongHelp: `Usage: export [--full] <file.png>

Writes the downsampled raster a prediction would submit. With --full the
whole canvas is written instead.`,
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("export", flag.ContinueOnError)
			var full bool
			flagSet.BoolVarP(&full, "full", "f", false, "write the full-size canvas")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}
			args := flagSet.Args()
			if len(args) == 0 {
				c.Err(errors.New("missing output file"))
				return
			}
			name := args[0]
			if !strings.HasSuffix(strings.ToLower(name), ".png") {
				name += ".png"
			}

			if err := export(ctx, name, full); err != nil {
				c.Err(fmt.Errorf("export failed: %w", err))
				return
			}
			c.Printf("wrote %s\n", name)
		},
	}
}

func export(ctx *ShellCtxt, name string, full bool) error {
	if full {
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		defer f.Close()
		return ctx.Pad.EncodePNG(f)
	}

	r, err := ctx.Pad.Raster()
	if err != nil {
		return err
	}
	return os.WriteFile(name, r.PNG, 0644)
}
