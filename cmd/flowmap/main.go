package main

import cmd "github.com/rohmanhakim/flowmap/internal/cli"

func main() {
	cmd.Execute()
}
