package main

import "github.com/prathmeshai01/task-manager/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	app.MustMigrate()
	app.MustListenAndServeHTTP()
}
