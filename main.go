package main

import "github.com/maxvaer/smokecheck/cmd"

func main() {
	cmd.Execute()
}
