package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to. Every
// handler receives the words following the command name.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Where(ctx context.Context, args []string) error
	Locate(ctx context.Context, args []string) error
	Near(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Post(ctx context.Context, args []string) error
	Mine(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Chats(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Contact(ctx context.Context, args []string) error
	Send(ctx context.Context, args []string) error
	Watch(ctx context.Context, args []string) error
	Notifications(ctx context.Context, args []string) error
	Read(ctx context.Context, args []string) error
	Dismiss(ctx context.Context, args []string) error
	Clear(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Rate(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: login, where, locate <lat> <lng>, near [radius], show <id>, exit"
	helpLoggedIn  = `Available commands:
  where | locate <lat> <lng> | near [radius] | show <id>
  post | mine | status <id> <status> | delete <id> | upload <file> [--presigned]
  chats | open <conv> | contact <item> | send <conv> <text> | watch <conv>
  notifications | read <id>|all | dismiss <id> | clear
  profile [user] | rate
  logout | exit`
)

// runREPL reads commands from reader and dispatches them to a until EOF,
// "exit"/"quit" or ctx cancellation. Handlers report their own errors, so
// their return values are ignored here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ls %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
		case "login":
			_ = a.Login(ctx, args)
		case "logout":
			_ = a.Logout(ctx, args)
		case "where":
			_ = a.Where(ctx, args)
		case "locate":
			_ = a.Locate(ctx, args)
		case "near", "n":
			_ = a.Near(ctx, args)
		case "show":
			_ = a.Show(ctx, args)
		case "post":
			_ = a.Post(ctx, args)
		case "mine":
			_ = a.Mine(ctx, args)
		case "status":
			_ = a.Status(ctx, args)
		case "delete":
			_ = a.Delete(ctx, args)
		case "upload":
			_ = a.Upload(ctx, args)
		case "chats":
			_ = a.Chats(ctx, args)
		case "open":
			_ = a.Open(ctx, args)
		case "contact":
			_ = a.Contact(ctx, args)
		case "send":
			_ = a.Send(ctx, args)
		case "watch":
			_ = a.Watch(ctx, args)
		case "notifications", "notif":
			_ = a.Notifications(ctx, args)
		case "read":
			_ = a.Read(ctx, args)
		case "dismiss":
			_ = a.Dismiss(ctx, args)
		case "clear":
			_ = a.Clear(ctx, args)
		case "profile":
			_ = a.Profile(ctx, args)
		case "rate":
			_ = a.Rate(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
