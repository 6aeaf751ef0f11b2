package main

import "github.com/ojo-network/ohm-analyzer/cmd"

func main() {
	cmd.Execute()
}
