package main

import (
	"os"

	"github.com/maxvaer/classver/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
