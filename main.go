package main

import "github.com/garghot/food-client/cmd"

func main() {
	cmd.Execute()
}
