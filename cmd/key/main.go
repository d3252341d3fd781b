// Command key reads and edits a KeePass database stored on the local disk,
// in an S3-compatible object store or behind a WebDAV-style HTTP endpoint.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := newApp(os.Stdin, os.Stderr)
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		a.ui.PrintError(err)
		stop()
		os.Exit(1)
	}
}
