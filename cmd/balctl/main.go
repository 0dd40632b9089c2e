package main

import "github.com/redballoonsecurity/bal/cmd/balctl/cmd"

func main() {
	cmd.Execute()
}
