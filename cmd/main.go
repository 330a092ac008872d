// cmd/main.go
package main

import (
	"account-opening-api/app"
)

// @title           Account Opening API
// @version         1.0
// @description     Opens savings, current and fixed deposit bank accounts.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
func main() {
	app.Run()
}
