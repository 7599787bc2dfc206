package main

import "yardwork_backend/internal/app"

func main() {
	app.Run()
}
