package main

import (
	"log"

	_ "github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/docs"
	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/config"
	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/server"
)

// @title           Communication Task Queue API
// @version         1.0
// @description     API for clinical and administrative follow-up task queues.

// @contact.name   Pittsford Performance Care

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
