package shell

import (
	"image"
	"strings"

	"github.com/abiosoft/ishell"
)

var shades = []byte(" .:-=+*#%@")

// preview renders a grayscale image as text, darkest ink densest.
func preview(img *image.Gray) string {
	var sb strings.Builder
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			ink := 255 - int(img.GrayAt(x, y).Y)
			ch := shades[ink*(len(shades)-1)/255]
			sb.WriteByte(ch)
			sb.WriteByte(ch)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func showCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "show",
		Help: "print the raster that would be submitted",
		Func: func(c *ishell.Context) {
			r, err := ctx.Pad.Raster()
			if err != nil {
				c.Err(err)
				return
			}
			c.Print(preview(r.Gray))
		},
	}
}
