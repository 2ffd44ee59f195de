package docs

import "github.com/swaggo/swag"

// @title           Communication Task Queue API
// @version         1.0
// @description     API for clinical and administrative follow-up task queues

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Auth
// @tag.description Staff registration and login

// @tag.name Tasks
// @tag.description Task queue operations

// @tag.name Clinicians
// @tag.description Clinician directory lookups

// Register swagger info
func SwaggerInfo() *swag.Spec {
	return swag.Instance
}
