package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses configuration flags from args (without the program name).
//
// Flags:
//
//	-a web server address in format [host]:[port]
//	-api NoteHub API base URL
//	-token NoteHub API bearer token
//	-per-page notes per page
//	-c/-config JSON or YAML config file path
//	-request-timeout inbound request timeout (e.g., "30s", "1m")
//	-api-timeout outbound request timeout
//	-log-level zerolog level name
//	-log-file terminal client log file
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("notehub", flag.ContinueOnError)

	var serverAddress NetAddress
	var baseURL, token, perPage, configPath, logLevel, logFile string
	var requestTimeout, apiTimeout time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&baseURL, "api", "", "NoteHub API base URL")
	fs.StringVar(&token, "token", "", "NoteHub API bearer token")
	fs.StringVar(&perPage, "per-page", "", "Notes per page")
	fs.StringVar(&configPath, "c", "", "Config file path (JSON or YAML)")
	fs.StringVar(&configPath, "config", "", "Config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Inbound request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&apiTimeout, "api-timeout", 0, "Outbound request timeout (e.g., 10s)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFile, "log-file", "", "Client log file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			NotesPerPage: perPage,
			LogLevel:     logLevel,
			LogFile:      logFile,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: Duration(requestTimeout),
		},
		Adapter: Adapter{
			BaseURL:        baseURL,
			Token:          token,
			RequestTimeout: Duration(apiTimeout),
		},
		ConfigFilePath: configPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress, or an empty
// string when neither part is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range and checks IP correctness unless host is
// "localhost" or empty.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
