package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trail/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	var (
		transport   string
		httpHost    string
		httpPort    int
		httpPath    string
		httpTLSCert string
		httpTLSKey  string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes the journal's sections and entries as
resources and its mutations as tools. The stdio transport suits editor and
agent integrations, the http transport serves the streamable endpoint.`,
		Example: `
trail mcp
trail mcp --transport=http --http-port=9090
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := persistence()
			if err != nil {
				return err
			}

			path := strings.TrimSpace(httpPath)
			if path == "" {
				path = "/mcp"
			}
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}

			runner := mcp.Runner{
				Store:            p,
				Config:           cfg,
				Name:             "trail",
				Version:          "dev",
				HTTPEndpointPath: path,
				HTTPServerCert:   strings.TrimSpace(httpTLSCert),
				HTTPServerKey:    strings.TrimSpace(httpTLSKey),
			}

			switch strings.ToLower(strings.TrimSpace(transport)) {
			case "", string(mcp.TransportStdio):
				runner.Transport = mcp.TransportStdio
			case string(mcp.TransportHTTP):
				host := strings.TrimSpace(httpHost)
				if host == "" {
					host = "127.0.0.1"
				}
				if httpPort < 0 || httpPort > 65535 {
					return fmt.Errorf("invalid http-port %d", httpPort)
				}

				addr := net.JoinHostPort(host, strconv.Itoa(httpPort))
				runner.Transport = mcp.TransportHTTP
				runner.HTTPListenAddr = addr
				runner.OnHTTPListening = func(a net.Addr) {
					scheme := "http"
					if runner.HTTPServerCert != "" && runner.HTTPServerKey != "" {
						scheme = "https"
					}

					tcpAddr, ok := a.(*net.TCPAddr)
					if !ok {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s://%s%s\n", scheme, addr, path)
						return
					}

					displayHost := host
					if tcpAddr.IP != nil && !tcpAddr.IP.IsUnspecified() {
						displayHost = tcpAddr.IP.String()
					} else if displayHost == "0.0.0.0" || displayHost == "::" {
						displayHost = "127.0.0.1"
					}
					if strings.Contains(displayHost, ":") && !strings.HasPrefix(displayHost, "[") {
						displayHost = "[" + displayHost + "]"
					}

					_, _ = fmt.Fprintf(cmd.OutOrStdout(),
						"MCP server listening on %s://%s:%d%s\n",
						scheme, displayHost, tcpAddr.Port, path)
				}
			default:
				return fmt.Errorf("unsupported transport %q (expected stdio or http)", transport)
			}

			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportStdio),
		"Transport to use: stdio or http.")
	cmd.Flags().StringVar(&httpHost, "http-host", "127.0.0.1",
		"Host or interface for the http transport.")
	cmd.Flags().IntVar(&httpPort, "http-port", 8080,
		"Port for the http transport, 0 picks a free one.")
	cmd.Flags().StringVar(&httpPath, "http-path", "/mcp",
		"HTTP endpoint path.")
	cmd.Flags().StringVar(&httpTLSCert, "http-tls-cert", "",
		"TLS certificate file for https.")
	cmd.Flags().StringVar(&httpTLSKey, "http-tls-key", "",
		"TLS private key file for https.")

	topLevel.AddCommand(cmd)
}
