package main

import "kimaijira/cmd"

func main() {
	cmd.Execute()
}
