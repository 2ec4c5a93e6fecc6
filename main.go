package main

import "tcontrol/internal/app"

// @title           Transaction Control API
// @version         1.0
// @description     Backend for tracking real-estate transactions, their task
// @description     checklists and deadline auditing.
// @BasePath        /
func main() {
	app.Run()
}
