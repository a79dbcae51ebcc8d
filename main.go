package main

import "thumbgrab/cmd"

func main() {
	cmd.Execute()
}
