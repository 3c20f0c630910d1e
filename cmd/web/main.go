package main

import "paperdesk_backend/internal/app"

func main() {
	app.Run()
}
