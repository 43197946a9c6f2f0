package commands

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/micropost/pkg/runner/mcp"
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
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes entries, tags, and mutations
through the Model Context Protocol.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newEngine()
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
				App:              svc,
				Name:             "micropost",
				Version:          "dev",
				HTTPEndpointPath: path,
				HTTPServerCert:   strings.TrimSpace(httpTLSCert),
				HTTPServerKey:    strings.TrimSpace(httpTLSKey),
			}

			switch strings.ToLower(strings.TrimSpace(transport)) {
			case string(mcp.TransportStdio):
				runner.Transport = mcp.TransportStdio
			case "", string(mcp.TransportHTTP):
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
					_, _ = fmt.Fprintf(cmd.OutOrStdout(),
						"MCP HTTP server listening on %s%s\n", a.String(), path)
				}
			default:
				return fmt.Errorf("unknown transport %q", transport)
			}

			return runner.Do(context.Background())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "http",
		"Transport to serve MCP over: http or stdio.")
	cmd.Flags().StringVar(&httpHost, "http-host", "127.0.0.1",
		"Host to bind the HTTP transport to.")
	cmd.Flags().IntVar(&httpPort, "http-port", 8080,
		"Port to bind the HTTP transport to.")
	cmd.Flags().StringVar(&httpPath, "http-path", "/mcp",
		"Endpoint path for the HTTP transport.")
	cmd.Flags().StringVar(&httpTLSCert, "http-tls-cert", "",
		"TLS certificate file for the HTTP transport.")
	cmd.Flags().StringVar(&httpTLSKey, "http-tls-key", "",
		"TLS key file for the HTTP transport.")

	topLevel.AddCommand(cmd)
}
