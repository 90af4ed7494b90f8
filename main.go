package main

import "github.com/KaramelBytes/biasscan-cli/cmd"

func main() {
	cmd.Execute()
}
