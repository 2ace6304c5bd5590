package shell

import (
	"encoding/json"

	"github.com/abiosoft/ishell"
)

func printJSON(c *ishell.Context, v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	c.Println(string(output))
	return nil
}

func statusCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "status",
		Help: "show the drawing and prediction state",
		Func: func(c *ishell.Context) {
			st := ctx.Pad.Status()
			if ctx.JSONOutput {
				if err := printJSON(c, st); err != nil {
					c.Err(err)
				}
				return
			}

			c.Printf("strokes: %d\n", st.Strokes)
			if st.Drawing {
				c.Println("gesture in progress")
			}
			c.Printf("ground truth: %d\n", st.GroundTruth)
			c.Printf("prediction: %s\n", st.Prediction.State)
			switch {
			case st.Prediction.Result != nil:
				c.Println(st.Prediction.Result.String())
			case st.Prediction.Message != "":
				c.Printf("Error: %s\n", st.Prediction.Message)
			}
		},
	}
}
