package main

import "github.com/Inesh-volunteer/graphbook/cmd"

func main() {
	cmd.Execute()
}
