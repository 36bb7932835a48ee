package main

import (
	"flag"
	"log"
	"os"

	"github.com/okonji/dhclientd/internal/config"
	"github.com/okonji/dhclientd/pkg/netconf"
)

func main() {
	configFile := flag.String("conf", "conf.yaml", "Path to the configuration file")
	flag.Parse()

	if envConfig := os.Getenv("DHCLIENTD_CONFIG_PATH"); envConfig != "" {
		*configFile = envConfig
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, err := netconf.InitClient(cfg)
	if err != nil {
		log.Fatalf("Failed to create DHCP client: %v", err)
	}

	err = client.Run()
	if err != nil {
		log.Fatalf("Client exited with error: %v", err)
	}
}
