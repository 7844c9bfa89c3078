package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/df07/go-block-pathtracer/internal/logger"
	"github.com/df07/go-block-pathtracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.NewLogger(*logLevel)
	defer log.Close()

	webServer := server.NewServer(*port, log)

	log.Infof("Block Path Tracer Web Server")
	log.Infof("Try http://localhost:%d/api/render?scene=two-spheres", *port)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webServer.Shutdown(ctx); err != nil {
			log.Errorf("Shutdown failed: %v", err)
		}
	}()

	if err := webServer.Start(); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
