package main

import "github.com/adanyl0v/go-tasks-api/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()
	defer app.CloseLogFile()

	app.MustConnectStorage()
	defer app.DisconnectStorage()

	app.MustListenAndServeHTTP()
}
