package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-recursive-raytracer/pkg/config"
	"github.com/df07/go-recursive-raytracer/pkg/output"
	"github.com/df07/go-recursive-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory of JSON scene files")
	envFile := flag.String("env", "", "Environment file to load (default .env)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}

	// Create and start web server
	webServer := server.NewServer(*port, cfg, *scenesDir)

	if cfg.PublishEnabled() {
		publisher, err := output.NewS3Publisher(cfg.S3)
		if err != nil {
			log.Printf("Error configuring S3 publisher: %v", err)
			os.Exit(1)
		}
		webServer.SetPublisher(publisher)
		log.Printf("Publishing renders to s3://%s", cfg.S3.Bucket)
	}

	log.Printf("Recursive Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
