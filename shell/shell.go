package shell

import (
	"fmt"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/ubfsw/digitpad/pad"
	"github.com/ubfsw/digitpad/session"
)

// ShellCtxt is shared by every command of one shell.
type ShellCtxt struct {
	Pad        *pad.Pad
	Session    *session.Store
	JSONOutput bool
}

func (ctx *ShellCtxt) prompt() string {
	st := ctx.Pad.Status()
	user := "anonymous"
	if ctx.Session != nil {
		if s := ctx.Session.Session(); s.Username != "" {
			user = s.Username
		}
	}
	return fmt.Sprintf("[%s label:%d strokes:%d]>", user, st.GroundTruth, st.Strokes)
}

func setCustomCompleter(shell *ishell.Shell) {
	cmdCompleter := make(cmdToCompleter)
	for _, cmd := range shell.Cmds() {
		cmdCompleter[cmd.Name] = cmd.Completer
	}

	completer := shellPathCompleter{cmdCompleter}
	shell.CustomCompleter(completer)
}

type cmdToCompleter map[string]func([]string) []string

type shellPathCompleter struct {
	cmdCompleter cmdToCompleter
}

func (s shellPathCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	words := strings.Fields(string(line[:pos]))
	var prefix string
	if len(words) > 0 && !strings.HasSuffix(string(line[:pos]), " ") {
		prefix = words[len(words)-1]
		words = words[:len(words)-1]
	}

	var candidates []string
	if len(words) == 0 {
		for name := range s.cmdCompleter {
			candidates = append(candidates, name)
		}
	} else if f := s.cmdCompleter[words[0]]; f != nil {
		candidates = f(words[1:])
	}

	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			newLine = append(newLine, []rune(c[len(prefix):]+" "))
		}
	}
	return newLine, len(prefix)
}

// RunShell runs args as a single command, or an interactive shell when
// args is empty.
func RunShell(ctx *ShellCtxt, args []string) error {
	shell := ishell.New()

	shell.SetPrompt(ctx.prompt())

	shell.AddCmd(downCmd(ctx))
	shell.AddCmd(moveCmd(ctx))
	shell.AddCmd(upCmd(ctx))
	shell.AddCmd(cancelCmd(ctx))
	shell.AddCmd(strokeCmd(ctx))
	shell.AddCmd(undoCmd(ctx))
	shell.AddCmd(clearCmd(ctx))
	shell.AddCmd(labelCmd(ctx))
	shell.AddCmd(predictCmd(ctx))
	shell.AddCmd(statusCmd(ctx))
	shell.AddCmd(exportCmd(ctx))
	shell.AddCmd(showCmd(ctx))
	shell.AddCmd(loginCmd(ctx))
	shell.AddCmd(logoutCmd(ctx))
	shell.AddCmd(whoamiCmd(ctx))

	setCustomCompleter(shell)

	if len(args) > 0 {
		return shell.Process(args...)
	}
	shell.Printf("digitpad: draw a digit (0-9) and run predict\n")
	shell.Run()
	return nil
}
