package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"
	flag "github.com/ogier/pflag"
)

func parsePoint(x, y string) (float64, float64, error) {
	fx, err := strconv.ParseFloat(x, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x %q", x)
	}
	fy, err := strconv.ParseFloat(y, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y %q", y)
	}
	return fx, fy, nil
}

// parsePointerArgs handles "[--pointer N] x y" and "[--pointer N]".
func parsePointerArgs(name string, args []string, wantPoint bool) (id int, x, y float64, err error) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.IntVarP(&id, "pointer", "p", 1, "pointer id")
	if err = flagSet.Parse(args); err != nil {
		return
	}
	rest := flagSet.Args()
	if !wantPoint {
		return
	}
	if len(rest) != 2 {
		err = errors.New("usage: " + name + " [--pointer N] <x> <y>")
		return
	}
	x, y, err = parsePoint(rest[0], rest[1])
	return
}

func downCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "down",
		Help: "pointer down, usage: down [--pointer N] <x> <y>",
		Func: func(c *ishell.Context) {
			id, x, y, err := parsePointerArgs("down", c.Args, true)
			if err != nil {
				c.Err(err)
				return
			}
			if err := ctx.Pad.PointerDown(id, x, y); err != nil {
				c.Err(err)
			}
		},
	}
}

func moveCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "move",
		Help: "pointer move, usage: move [--pointer N] <x> <y>",
		Func: func(c *ishell.Context) {
			id, x, y, err := parsePointerArgs("move", c.Args, true)
			if err != nil {
				c.Err(err)
				return
			}
			ctx.Pad.PointerMove(id, x, y)
		},
	}
}

func upCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "up",
		Help: "pointer up, usage: up [--pointer N]",
		Func: func(c *ishell.Context) {
			id, _, _, err := parsePointerArgs("up", c.Args, false)
			if err != nil {
				c.Err(err)
				return
			}
			ctx.Pad.PointerUp(id)
			c.SetPrompt(ctx.prompt())
		},
	}
}

func cancelCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "cancel",
		Help: "pointer cancel, usage: cancel [--pointer N]",
		Func: func(c *ishell.Context) {
			id, _, _, err := parsePointerArgs("cancel", c.Args, false)
			if err != nil {
				c.Err(err)
				return
			}
			ctx.Pad.PointerCancel(id)
			c.SetPrompt(ctx.prompt())
		},
	}
}

// parseStroke reads "x,y x,y ..." into coordinate pairs.
func parseStroke(args []string) ([][2]float64, error) {
	if len(args) == 0 {
		return nil, errors.New("missing points")
	}
	points := make([][2]float64, 0, len(args))
	for _, a := range args {
		parts := strings.Split(a, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid point %q, want x,y", a)
		}
		x, y, err := parsePoint(parts[0], parts[1])
		if err != nil {
			return nil, err
		}
		points = append(points, [2]float64{x, y})
	}
	return points, nil
}

func strokeCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "stroke",
		Help: "draw a whole gesture, usage: stroke x,y [x,y ...]",
		LongHelp: `Usage: stroke x,y [x,y ...]

Sends pointer down at the first point, a move for every following point
and pointer up at the end. Coordinates are canvas pixels.`,
		Func: func(c *ishell.Context) {
			points, err := parseStroke(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			if err := ctx.Pad.PointerDown(1, points[0][0], points[0][1]); err != nil {
				c.Err(err)
				return
			}
			for _, p := range points[1:] {
				ctx.Pad.PointerMove(1, p[0], p[1])
			}
			ctx.Pad.PointerUp(1)
			c.SetPrompt(ctx.prompt())
		},
	}
}
