package config

import (
	"fmt"
	"os"

	"github.com/mcuadros/go-defaults"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Client struct {
		Interface string `yaml:"interface"`
		Script    string `yaml:"script"`
		ClassID   string `yaml:"class_id" default:"dhclientd"`
		ClientID  string `yaml:"client_id"`
		Metric    int    `yaml:"metric" default:"0"`
		Gateway   bool   `yaml:"gateway" default:"true"`
		MTU       bool   `yaml:"mtu" default:"true"`
		DNS       bool   `yaml:"dns" default:"true"`
		NTP       bool   `yaml:"ntp" default:"false"`
		NIS       bool   `yaml:"nis" default:"false"`
		Hostname  bool   `yaml:"hostname" default:"false"`
		ARPCheck  bool   `yaml:"arp_check" default:"true"`
	} `yaml:"client"`
	Paths struct {
		ResolvFile         string `yaml:"resolv_file" default:"/etc/resolv.conf"`
		Resolvconf         string `yaml:"resolvconf" default:"/sbin/resolvconf"`
		NTPFile            string `yaml:"ntp_file" default:"/etc/ntp.conf"`
		NTPService         string `yaml:"ntp_service" default:"/etc/init.d/ntpd"`
		NTPRestartArgs     string `yaml:"ntp_restart_args" default:"restart"`
		NTPDriftFile       string `yaml:"ntp_drift_file" default:"/var/lib/ntp/ntp.drift"`
		NTPLogFile         string `yaml:"ntp_log_file" default:"/var/log/ntp.log"`
		OpenNTPFile        string `yaml:"openntp_file"`
		OpenNTPService     string `yaml:"openntp_service"`
		OpenNTPRestartArgs string `yaml:"openntp_restart_args" default:"restart"`
		NISFile            string `yaml:"nis_file" default:"/etc/yp.conf"`
		NISService         string `yaml:"nis_service" default:"/etc/init.d/ypbind"`
		NISRestartArgs     string `yaml:"nis_restart_args" default:"restart"`
		InfoDir            string `yaml:"info_dir" default:"/var/lib/dhclientd"`
		StateDB            string `yaml:"state_db" default:"/var/lib/dhclientd/state.db"`
	} `yaml:"paths"`
	Logging struct {
		Level string `yaml:"level" default:"info"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled       bool   `yaml:"enabled" default:"false"`
		ListenAddress string `yaml:"listen_address" default:":9101"`
	} `yaml:"metrics"`
}

func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %v", err)
	}

	cfg := &Config{}
	defaults.SetDefaults(cfg)
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration YAML: %v", err)
	}

	if cfg.Client.Interface == "" {
		return nil, fmt.Errorf("client interface is required")
	}

	return cfg, nil
}
