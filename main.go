package main

import (
	cmd "github.com/rohmanhakim/dom-patcher/internal/cli"
)

func main() {
	cmd.Execute()
}
