// Command gitstermd serves a server-side ECMA-48/Linux-console terminal
// emulator over a websocket, spawning one PTY-backed shell per connection
// (spec.md §6).
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/patrick-goecommerce/gitstermd/internal/config"
	"github.com/patrick-goecommerce/gitstermd/internal/session"
	"github.com/patrick-goecommerce/gitstermd/internal/terminal"
	"github.com/patrick-goecommerce/gitstermd/internal/transport"
)

var (
	addr     string
	shell    string
	workDir  string
	rows     int
	cols     int
	capsFile string
)

var rootCmd = &cobra.Command{
	Use:   "gitstermd",
	Short: "gitstermd - a server-side terminal emulator",
	Long:  "gitstermd renders a Linux console over a websocket, one PTY-backed shell per connection.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the websocket terminal server",
	RunE:  runServe,
}

func init() {
	cfg := config.Load()

	serveCmd.Flags().StringVar(&addr, "addr", cfg.ListenAddr, "listen address")
	serveCmd.Flags().StringVar(&shell, "shell", cfg.Shell, "shell command spawned per session (default: $SHELL)")
	serveCmd.Flags().StringVar(&workDir, "workdir", cfg.WorkDir, "working directory for new sessions")
	serveCmd.Flags().IntVar(&rows, "rows", cfg.DefaultRows, "default emulator rows")
	serveCmd.Flags().IntVar(&cols, "cols", cfg.DefaultCols, "default emulator columns")
	serveCmd.Flags().StringVar(&capsFile, "caps", cfg.CapabilitiesFile, "override capability definition file (default: embedded)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("gitstermd dev")
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	var capData []byte
	if capsFile != "" {
		data, err := os.ReadFile(capsFile)
		if err != nil {
			return fmt.Errorf("reading capabilities file: %w", err)
		}
		capData = data
	}

	var shellArgv []string
	if shell != "" {
		shellArgv = []string{shell}
	}

	factory := func() (*session.Session, error) {
		sess, err := session.New(rows, cols)
		if err != nil {
			return nil, err
		}
		if capData != nil {
			term, err := terminal.NewWithCapabilities(rows, cols, capData)
			if err != nil {
				return nil, err
			}
			sess.Term = term
		}
		if err := sess.Start(shellArgv, workDir, nil); err != nil {
			return nil, err
		}
		return sess, nil
	}

	handler := transport.NewHandler(factory)
	http.Handle("/ws", handler)

	log.Printf("gitstermd: listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gitstermd: %v\n", err)
		os.Exit(1)
	}
}
