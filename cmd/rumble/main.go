package main

import (
	"github.com/rumbledev/restaurant-rumble/internal/cli"
)

func main() {
	cli.Execute()
}
