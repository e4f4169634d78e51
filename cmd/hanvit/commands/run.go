package commands

import (
	"log"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/educreatorschool-design/hanvitlms/internal/bridge"
	"github.com/educreatorschool-design/hanvitlms/pkg/remote"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the LMS state service with live remote sync",
	Long: `Run starts the state store with local persistence and the remote sync
bridge, then blocks until interrupted.

On startup the remote record is fetched once to seed local state. After
that, local mutations are debounced into full-snapshot pushes and remote
updates stream in over Pub/Sub. The store stays fully usable when Redis
is unreachable; sync resumes on the next local change.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, st, files, err := openStore()
	if err != nil {
		return err
	}

	// Persistence subscribes first so every mutation, including remote
	// applies, lands in the local snapshot.
	files.Attach(st)

	client, err := remote.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cfg.Instance)
	if err != nil {
		return err
	}
	defer client.Close()

	b := bridge.New(st, client, bridge.Options{
		Debounce: cfg.Sync.Debounce(),
		Guard:    cfg.Sync.Guard(),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("[INFO] Hanvit LMS starting for instance='%s' (state: %s)", cfg.Instance, files.Path())
	if err := b.Start(ctx); err != nil {
		return err
	}
	log.Printf("[INFO] Shutdown complete")
	return nil
}
