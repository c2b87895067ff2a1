package main

import (
	"os"

	"hydroshare-viewer-service/cmd/hsviewer/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
