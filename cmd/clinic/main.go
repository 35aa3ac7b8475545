package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"
	_ "time/tzdata" // CLINIC_TIMEZONE on hosts without a zoneinfo database

	"github.com/aussiebroadwan/neurohealth/internal/clinic/app"
	"github.com/aussiebroadwan/neurohealth/pkg/clinicsdk"
)

func main() {
	cfg := app.LoadConfig()

	// `clinic healthcheck` probes a running instance, for container HEALTHCHECKs
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		os.Exit(healthcheck(cfg.Port))
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

func healthcheck(port int) int {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client := clinicsdk.NewClient(fmt.Sprintf("http://127.0.0.1:%d", port))
	health, err := client.GetReadiness(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unhealthy: %v\n", err)
		return 1
	}
	fmt.Printf("%s (%s, up %s)\n", health.Status, health.Version, health.Uptime)
	return 0
}
