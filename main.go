package main

import "tg-dating-backend/cmd"

func main() {
	cmd.Run()
}
