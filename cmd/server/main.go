package main

import "proposal-backend/internal/app"

func main() {
	app.Run()
}
