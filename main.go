package main

import "github.com/LegacyCodeHQ/amalgam/cmd"

func main() {
	cmd.Execute()
}
