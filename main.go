package main

import "github.com/filberthamijoyo/cachesim/cmd"

func main() {
	cmd.Execute()
}
