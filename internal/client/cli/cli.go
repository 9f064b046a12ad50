// Package cli implements the interactive client commands.
package cli

import (
	"context"
	"fmt"

	"github.com/avdeyev/classpack/internal/client/auth"
	"github.com/avdeyev/classpack/internal/client/content"
	"github.com/avdeyev/classpack/internal/client/iocli"
	"github.com/avdeyev/classpack/internal/client/syncqueue"
)

// Cli dispatches commands over the auth service, the content façades and the
// sync queue.
type Cli struct {
	io      iocli.IO
	auth    *auth.Service
	manager *content.Manager
	queue   *syncqueue.Queue
}

func New(io iocli.IO, authService *auth.Service, manager *content.Manager, queue *syncqueue.Queue) *Cli {
	return &Cli{
		io:      io,
		auth:    authService,
		manager: manager,
		queue:   queue,
	}
}

// Run executes one command. Unknown commands return an error; main decides
// the exit code.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "add":
		return c.runAdd(ctx, args)
	case "list":
		return c.runList(ctx, args)
	case "get":
		return c.runGet(ctx, args)
	case "delete":
		return c.runDelete(ctx, args)
	case "move":
		return c.runMove(ctx, args)
	case "sync":
		return c.runSync(ctx)
	case "watch":
		return c.runWatch(ctx)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func PrintUsage() {
	fmt.Println("ClassPack Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  classpack [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version        Show version information")
	fmt.Println("  --server URL     Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH        Path to local database (default: classpack-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                    Register a new account")
	fmt.Println("  login                       Login to server")
	fmt.Println("  logout                      Logout from server")
	fmt.Println("  status                      Show session and pending sync state")
	fmt.Println("  add <type>                  Add an item (file, link, worksheet, quiz, folder, document)")
	fmt.Println("  list <type>                 List items of a type")
	fmt.Println("  get <type> <id>             Show full item details")
	fmt.Println("  delete <type> <id>          Delete an item everywhere")
	fmt.Println("  move <type> <id> [folder]   Move an item into a folder (no folder = root)")
	fmt.Println("  sync                        Run one full sync pass now")
	fmt.Println("  watch                       Keep syncing until interrupted")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  classpack register")
	fmt.Println("  classpack login")
	fmt.Println("  classpack add quiz")
	fmt.Println("  classpack list worksheets")
	fmt.Println("  classpack get quiz b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5")
	fmt.Println("  classpack move quiz b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5 algebra-folder-id")
	fmt.Println("  classpack --server https://example.com sync")
}
