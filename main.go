package main

import "github.com/mpapenbr/f1-strategy-sim-go/cmd"

func main() {
	cmd.Execute()
}
