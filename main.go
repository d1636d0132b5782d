package main

import "taxsync/cmd"

func main() {
	cmd.Execute()
}
