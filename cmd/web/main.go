// @title           Internship Management API
// @version         1.0
// @description     API системы управления стажировками: аутентификация, посещаемость, назначения, уведомления.
// @contact.name    Internship Management
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:5000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

package main

import "internship_backend/internal/app"

func main() {
	app.Run()
}
