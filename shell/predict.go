package shell

import (
	"context"
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/ubfsw/digitpad/classify"
)

func predictCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "predict",
		Help: "submit the drawing to the classifier",
		Func: func(c *ishell.Context) {
			c.Println(fmt.Sprintf("predicting (actual digit %d)...", ctx.Pad.GroundTruth()))

			res, err := ctx.Pad.Predict(context.Background())
			if err == classify.ErrBusy {
				c.Err(err)
				return
			}

			if ctx.JSONOutput {
				if err := printJSON(c, ctx.Pad.Prediction()); err != nil {
					c.Err(err)
				}
				return
			}
			if err != nil {
				c.Println("Error: " + err.Error())
				return
			}
			c.Println(res.String())
		},
	}
}
