package main

import (
	"github.com/heartquiz/heartgame-go/internal/cli"
)

func main() {
	cli.Execute()
}
