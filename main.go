package main

import "github.com/CroosRRAF/ChefSync-sub005/cmd"

func main() {
	cmd.Execute()
}
