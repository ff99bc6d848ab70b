package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := newGlobalState(ctx).execute(os.Args[1:])
	stop()
	os.Exit(code)
}
