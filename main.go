package main

import "github.com/rpgo/property-projector/cmd"

func main() {
	cmd.Execute()
}
