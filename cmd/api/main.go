package main

import (
	_ "waste_negotiation/docs"
	"waste_negotiation/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Waste Negotiation API
// @version         1.0
// @description     Contract negotiation between waste producers and collection agencies, backed by DynamoDB or PostgreSQL.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
