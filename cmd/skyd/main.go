package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skytable/skyd/pkg/config"
	"github.com/skytable/skyd/pkg/engine"
	"github.com/skytable/skyd/pkg/log"
	"github.com/skytable/skyd/pkg/metrics"
	"github.com/skytable/skyd/pkg/persist"
	"github.com/skytable/skyd/pkg/server"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "skyd",
	Short:   "skyd - an in-memory NoSQL database server",
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("skyd version %s\nCommit: %s\n", Version, Commit))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	cobra.OnInitialize(initLogging)

	registerRunFlags(runCmd)
	registerRunFlags(dbrestoreCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(dbrestoreCmd)
}

func initLogging() {
	level, _ := rootCmd.PersistentFlags().GetString("log-level")
	jsonOut, _ := rootCmd.PersistentFlags().GetBool("log-json")
	log.Init(log.Config{Level: log.Level(level), JSONOutput: jsonOut})
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the server",
	RunE:  runServer,
}

var dbrestoreCmd = &cobra.Command{
	Use:   "dbrestore <source-dir>",
	Short: "Recover the store from a backup directory instead of the data directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		restoreFrom = args[0]
		return runServer(cmd, nil)
	},
}

// restoreFrom is set by dbrestoreCmd before delegating into runServer;
// a plain `skyd run` leaves it empty and recovers from DataDirectory.
var restoreFrom string

func registerRunFlags(cmd *cobra.Command) {
	def := config.Default()
	cmd.Flags().String("host", def.Host, "Bind address")
	cmd.Flags().Int("port", def.Port, "Insecure listener port")
	cmd.Flags().Bool("noart", false, "Suppress the startup banner")
	cmd.Flags().Int("maxcon", def.MaxCon, "Maximum concurrent connections")
	cmd.Flags().String("mode", string(def.Mode), "dev or prod")
	cmd.Flags().Int("protocol", int(def.Protocol), "Skyhash protocol version (1 or 2)")
	cmd.Flags().String("data-dir", def.DataDirectory, "On-disk data directory")

	cmd.Flags().Bool("bgsave-enabled", def.BGSave.Enabled, "Enable periodic background flush")
	cmd.Flags().Duration("bgsave-every", def.BGSave.Every, "Background flush interval")

	cmd.Flags().Duration("snapshot-every", 0, "Snapshot interval (0 disables snapshotting)")
	cmd.Flags().Int("snapshot-atmost", 0, "Maximum local snapshots retained")
	cmd.Flags().Bool("snapshot-failsafe", false, "Poison the store on a failed background flush")

	cmd.Flags().String("tls-key", "", "TLS private key path")
	cmd.Flags().String("tls-chain", "", "TLS certificate chain path")
	cmd.Flags().Int("tls-port", config.DefaultSecurePort, "Secure listener port")
	cmd.Flags().Bool("tls-only", false, "Disable the insecure listener")
	cmd.Flags().String("tls-passin", "", "Passphrase file decrypting the TLS key")

	cmd.Flags().String("auth-origin-key", "", "40-character origin key; empty disables auth")

	cmd.Flags().String("metrics-addr", "127.0.0.1:9090", "Address for /metrics, /health, /ready, /live")
}

func buildConfig(cmd *cobra.Command) (config.ConfigurationSet, error) {
	cfg := config.Default()

	cfg.Host, _ = cmd.Flags().GetString("host")
	cfg.Port, _ = cmd.Flags().GetInt("port")
	cfg.Noart, _ = cmd.Flags().GetBool("noart")
	cfg.MaxCon, _ = cmd.Flags().GetInt("maxcon")
	mode, _ := cmd.Flags().GetString("mode")
	cfg.Mode = config.Mode(mode)
	proto, _ := cmd.Flags().GetInt("protocol")
	cfg.Protocol = config.ProtocolVersion(proto)
	cfg.DataDirectory, _ = cmd.Flags().GetString("data-dir")

	cfg.BGSave.Enabled, _ = cmd.Flags().GetBool("bgsave-enabled")
	cfg.BGSave.Every, _ = cmd.Flags().GetDuration("bgsave-every")

	every, _ := cmd.Flags().GetDuration("snapshot-every")
	atmost, _ := cmd.Flags().GetInt("snapshot-atmost")
	failsafe, _ := cmd.Flags().GetBool("snapshot-failsafe")
	cfg.Snapshot = config.SnapshotConfig{Every: every, AtMost: atmost, Failsafe: failsafe}

	tlsKey, _ := cmd.Flags().GetString("tls-key")
	tlsChain, _ := cmd.Flags().GetString("tls-chain")
	if tlsKey != "" || tlsChain != "" {
		tlsPort, _ := cmd.Flags().GetInt("tls-port")
		tlsOnly, _ := cmd.Flags().GetBool("tls-only")
		tlsPassin, _ := cmd.Flags().GetString("tls-passin")
		cfg.TLS = &config.TLSConfig{Key: tlsKey, Chain: tlsChain, Port: tlsPort, Only: tlsOnly, PassInput: tlsPassin}
	}

	cfg.Auth.OriginKey, _ = cmd.Flags().GetString("auth-origin-key")
	cfg.RestoreSourceDirectory = restoreFrom

	if err := cfg.Validate(); err != nil {
		return config.ConfigurationSet{}, err
	}
	return cfg, nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := checkRlimit(cfg.Mode, cfg.MaxCon); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.DataDirectory, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	lock, err := acquirePIDLock(".")
	if err != nil {
		return err
	}
	defer lock.release()

	recoverFrom := cfg.DataDirectory
	if cfg.RestoreSourceDirectory != "" {
		recoverFrom = cfg.RestoreSourceDirectory
	}
	ms, provider, err := persist.Recover(recoverFrom, cfg.Auth.OriginKey)
	if err != nil {
		return fmt.Errorf("failed to recover store: %w", err)
	}

	reg := engine.NewRegistry(ms, provider)
	eng := engine.New(reg)

	var bgsave *persist.BGSaveScheduler
	if cfg.BGSave.Enabled {
		bgsave = persist.NewBGSaveScheduler(cfg.DataDirectory, ms, provider, cfg.BGSave.Every, cfg.Snapshot.Failsafe, reg.PreloadTrip)
		bgsave.OnCleanup(reg.CleanupTrip)
		bgsave.OnPoisonChange(func(poisoned bool) {
			if poisoned {
				reg.Poison()
				metrics.StorePoisoned.Set(1)
			} else {
				reg.Unpoison()
				metrics.StorePoisoned.Set(0)
			}
		})
		bgsave.Start()
		defer bgsave.Stop()
	}

	if cfg.Snapshot.Every > 0 {
		reg.Snapshots = persist.NewSnapshotScheduler(cfg.DataDirectory, ms, provider, cfg.Snapshot.Every, cfg.Snapshot.AtMost)
		reg.Snapshots.Start()
		defer reg.Snapshots.Stop()
	}

	collector := metrics.NewCollector(ms, provider)
	collector.Start()
	defer collector.Stop()

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/health", metrics.HealthHandler())
	mux.Handle("/ready", metrics.ReadyHandler())
	mux.Handle("/live", metrics.LivenessHandler())
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
	metricsSrv := &http.Server{Addr: metricsAddr, Handler: mux}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("metrics server error", err)
		}
	}()
	defer metricsSrv.Close()

	servers, err := buildServers(&cfg, eng)
	if err != nil {
		return err
	}

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		srv := srv
		go func() {
			if err := srv.Serve(); err != nil {
				errCh <- err
			}
		}()
	}

	if !cfg.Noart {
		printBanner(cfg)
	}
	log.Info("skyd is ready")

	waitForShutdown(errCh)

	for _, srv := range servers {
		srv.Stop()
	}
	log.Info("shutdown complete")
	return nil
}

func buildServers(cfg *config.ConfigurationSet, eng *engine.Engine) ([]*server.Server, error) {
	var servers []*server.Server

	if cfg.TLS == nil {
		servers = append(servers, server.New(cfg, eng, nil))
		return servers, nil
	}

	tlsConf, err := server.LoadTLSConfig(cfg.TLS)
	if err != nil {
		return nil, err
	}
	servers = append(servers, server.New(cfg, eng, tlsConf))
	if !cfg.TLS.Only {
		servers = append(servers, server.New(cfg, eng, nil))
	}
	return servers, nil
}

func waitForShutdown(errCh chan error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info("received shutdown signal")
	case err := <-errCh:
		log.Errorf("listener error", err)
	}

	// A second signal escalates to an immediate exit rather than
	// waiting on in-flight connections indefinitely.
	go func() {
		<-sigCh
		log.Warn("second signal received, forcing exit")
		os.Exit(1)
	}()
}

func printBanner(cfg config.ConfigurationSet) {
	fmt.Println("skyd is starting")
	fmt.Printf("  Host: %s\n", cfg.Host)
	fmt.Printf("  Port: %d\n", cfg.Port)
	fmt.Printf("  Mode: %s\n", cfg.Mode)
	fmt.Printf("  Protocol: %d\n", cfg.Protocol)
	if cfg.TLS != nil {
		fmt.Printf("  TLS port: %d (only=%v)\n", cfg.TLS.Port, cfg.TLS.Only)
	}
}
