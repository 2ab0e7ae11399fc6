package main

import (
	"os"

	"github.com/stigoleg/mouse-keepalive/internal/cli"
)

const appVersion = "0.1.0"

func main() {
	os.Exit(cli.Execute(cli.Options{Version: appVersion}, os.Args[1:]))
}
