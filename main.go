package main

import "tag-reconciler/cmd"

func main() {
	cmd.Execute()
}
