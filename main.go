package main

import "github.com/letsrust/simple-redis/cmd"

func main() {
	cmd.Execute()
}
