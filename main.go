package main

import "github.com/Shivam0504-hash/rcc-documentation/cmd"

func main() {
	cmd.Execute()
}
