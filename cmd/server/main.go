package main

import "github.com/lnm-board/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
