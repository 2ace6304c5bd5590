package shell

import (
	"errors"
	"strconv"

	"github.com/abiosoft/ishell"
)

func undoCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "undo",
		Help: "remove the last stroke",
		Func: func(c *ishell.Context) {
			if !ctx.Pad.CanUndo() {
				c.Println("nothing to undo")
			}
			ctx.Pad.Undo()
			c.SetPrompt(ctx.prompt())
		},
	}
}

func clearCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "clear",
		Help: "erase the drawing",
		Func: func(c *ishell.Context) {
			ctx.Pad.Clear()
			c.SetPrompt(ctx.prompt())
		},
	}
}

func labelCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:      "label",
		Help:      "set the actual digit sent with predictions, usage: label <0-9>",
		Completer: func([]string) []string { return []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"} },
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Printf("ground truth: %d\n", ctx.Pad.GroundTruth())
				return
			}
			d, err := strconv.Atoi(c.Args[0])
			if err != nil {
				c.Err(errors.New("label must be a digit"))
				return
			}
			if err := ctx.Pad.SetGroundTruth(d); err != nil {
				c.Err(err)
				return
			}
			c.SetPrompt(ctx.prompt())
		},
	}
}
