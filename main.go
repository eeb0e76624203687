package main

import "github.com/Svynct/ignite-rocketshoes/cmd"

func main() {
	cmd.Start()
}
