package shell

import (
	"errors"
	"fmt"

	"github.com/abiosoft/ishell"
	flag "github.com/ogier/pflag"

	"github.com/ubfsw/digitpad/session"
)

var errNoSession = errors.New("no session store configured")

func loginCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "login",
		Help: "remember the user sent with predictions, usage: login [--token T] <username>",
		Func: func(c *ishell.Context) {
			if ctx.Session == nil {
				c.Err(errNoSession)
				return
			}
			flagSet := flag.NewFlagSet("login", flag.ContinueOnError)
			var token string
			flagSet.StringVarP(&token, "token", "t", "", "bearer token")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}
			args := flagSet.Args()

			username := ""
			if len(args) > 0 {
				username = args[0]
			} else if token != "" {
				username = session.TokenSubject(token)
			}
			if username == "" {
				c.Err(errors.New("missing username"))
				return
			}

			if err := ctx.Session.Login(username, token); err != nil {
				c.Err(err)
				return
			}
			c.Println(fmt.Sprintf("signed in as %s", username))
			c.SetPrompt(ctx.prompt())
		},
	}
}

func logoutCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "logout",
		Help: "forget the user and token, keeping the device id",
		Func: func(c *ishell.Context) {
			if ctx.Session == nil {
				c.Err(errNoSession)
				return
			}
			if err := ctx.Session.Logout(); err != nil {
				c.Err(err)
				return
			}
			c.SetPrompt(ctx.prompt())
		},
	}
}

func whoamiCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "whoami",
		Help: "show the session sent with predictions",
		Func: func(c *ishell.Context) {
			if ctx.Session == nil {
				c.Println("anonymous")
				return
			}
			s := ctx.Session.Session()
			if s.Username == "" {
				c.Println("anonymous")
			} else {
				c.Printf("user: %s\n", s.Username)
			}
			c.Printf("device: %s\n", s.DeviceID)
			if s.AuthToken != "" {
				c.Println("token: present")
			}
		},
	}
}
