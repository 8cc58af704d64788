// Package main is the entry point for the bookfind CLI, a terminal client
// for the e-book search service.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bookfind/internal/apiclient"
	"bookfind/internal/config"
	"bookfind/internal/history"
	"bookfind/internal/search"
	"bookfind/internal/util"
	"bookfind/pkg/session"
)

var cfgPath string

// rootCmd is the base command for the bookfind CLI.
var rootCmd = &cobra.Command{
	Use:   "bookfind",
	Short: "Search a remote e-book library from the terminal",
	Long: `bookfind signs in to an e-book search service, runs full-text queries
against its index, and browses past searches. Sessions persist between
invocations; sign in once with "bookfind login".`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: ./bookfind.yaml)")
}

// core holds the wired client components shared by all subcommands.
type core struct {
	cfg      config.FileConfig
	sessions *session.Store
	client   *apiclient.Client
	searcher *search.Orchestrator
	history  *history.Cache
}

func newCore() (*core, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	util.InitLogger(cfg.LogLevel)

	timeout, err := config.ParseRequestTimeout(cfg.RequestTimeout)
	if err != nil {
		return nil, err
	}

	var kv session.KVStore
	var clientID string
	if cfg.RedisAddr != "" {
		kv = session.NewRedisKV(cfg.RedisAddr, cfg.RedisPassword, "")
	} else {
		fileKV, err := session.NewFileKV(sessionFilePath(cfg))
		if err != nil {
			return nil, err
		}
		clientID = fileKV.InstallID()
		kv = fileKV
	}

	sessions := session.NewStore(kv, session.NewValidator())
	client := apiclient.New(apiclient.Config{
		BaseURL:  cfg.ServiceURL,
		Sessions: sessions,
		ClientID: clientID,
		Timeout:  timeout,
	})
	return &core{
		cfg:      cfg,
		sessions: sessions,
		client:   client,
		searcher: search.NewOrchestrator(client),
		history:  history.NewCache(client),
	}, nil
}

func sessionFilePath(cfg config.FileConfig) string {
	if cfg.SessionFile != "" {
		return cfg.SessionFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "bookfind-session.json"
	}
	return filepath.Join(home, ".config", "bookfind", "session.json")
}

// explainError turns a classified failure into the message the user acts on.
func explainError(err error) string {
	switch {
	case apiclient.IsKind(err, apiclient.KindUnauthenticated),
		apiclient.IsKind(err, apiclient.KindUnauthorized):
		return fmt.Sprintf("%v — run \"bookfind login\" to sign in again", err)
	case apiclient.IsKind(err, apiclient.KindNetwork):
		return fmt.Sprintf("%v — check connectivity and serviceURL", err)
	default:
		return err.Error()
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
