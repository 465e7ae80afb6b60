package main

import "github.com/avilev/daily-status/cmd"

func main() {
	cmd.Execute()
}
