// Package config loads the YAML configuration for the sstatus server. The
// scheduler endpoints need no configuration; the accounting DB and LDAP
// sections are optional and enable their backends when a host is set.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server Server `yaml:"server"`
}

type Server struct {
	Slurmdb Slurmdb `yaml:"slurmdb"`
	LDAP    LDAP    `yaml:"ldap"`
}

// Slurmdb 描述 slurmdbd 后端 MySQL 库的只读连接参数.
type Slurmdb struct {
	ClusterName     string `yaml:"clusterName"`
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	Database        string `yaml:"database"`
	Charset         string `yaml:"charset"`
	ParseTime       bool   `yaml:"parseTime"`
	Loc             string `yaml:"loc"`
	TLS             string `yaml:"tls"`
	MaxOpenConns    int    `yaml:"maxOpenConns"`
	MaxIdleConns    int    `yaml:"maxIdleConns"`
	ConnMaxLifetime string `yaml:"connMaxLifetime"`
}

// LDAP 描述用户目录的连接与绑定参数, 仅做读取.
type LDAP struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	UseTLS             bool   `yaml:"useTLS"`
	StartTLS           bool   `yaml:"startTLS"`
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify"`
	ServerName         string `yaml:"serverName"`
	RootCAFile         string `yaml:"rootCAFile"`
	ClientCertFile     string `yaml:"clientCertFile"`
	ClientKeyFile      string `yaml:"clientKeyFile"`
	BindDN             string `yaml:"bindDN"`
	BindPassword       string `yaml:"bindPassword"`
	BaseDN             string `yaml:"baseDN"`
	ConnectTimeout     string `yaml:"connectTimeout"`
	ReadTimeout        string `yaml:"readTimeout"`
}

// Load reads the YAML file at path into a Config.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
