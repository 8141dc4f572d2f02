package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
	"github.com/thenoetrevino/phaseboard/internal/config"
	"github.com/thenoetrevino/phaseboard/internal/events"
	"github.com/thenoetrevino/phaseboard/internal/models"
)

// WatchCmd returns the notification watch subcommand
func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream a member's notifications as other sessions publish them",
		Long: `Follow the events channel of the redis notification log and print each
notification for --user as it arrives. Requires notifications.log.driver
to be redis, or an explicit --redis-addr. Stops on Ctrl-C or after --count
notifications.

Examples:
  phaseboard notification watch --user=tm2
  phaseboard notification watch --user=tm2 --json --count=1
`,
		RunE: runWatch,
	}

	addUserFlag(cmd)
	cmd.Flags().String("redis-addr", "", "Redis host:port (default: notifications.log.redis_addr)")
	cmd.Flags().Int("count", 0, "Stop after this many notifications (0 = run until interrupted)")

	cmd.Flags().Bool("json", false, "Output one JSON object per notification")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	addr, _ := cmd.Flags().GetString("redis-addr")
	count, _ := cmd.Flags().GetInt("count")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return cli.Coded(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	member, err := resolveUser(cmd, cliInstance)
	if err != nil {
		return formatter.Fail(err, "See the team section of the pipeline file for member IDs")
	}

	lc := cliInstance.Config.Notifications.Log
	if addr == "" {
		if lc.Driver != config.LogDriverRedis {
			return formatter.Usage("watch needs the redis notification log",
				"Set notifications.log.driver to redis or pass --redis-addr")
		}
		addr = lc.RedisAddr
	}

	feed, err := events.NewRedisFeed(&redis.Options{Addr: addr}, lc.RedisKey+":events")
	if err != nil {
		return formatter.Fail(err, "")
	}
	defer func() {
		if err := feed.Close(); err != nil {
			slog.Error("Error closing notification feed", "error", err)
		}
	}()

	stream, err := feed.Listen(ctx)
	if err != nil {
		return formatter.Fail(err, "Check that redis is reachable at "+addr)
	}

	if !jsonOutput && !quietMode {
		fmt.Printf("Watching notifications for %s (Ctrl-C to stop)\n", member.Name)
	}

	enc := json.NewEncoder(os.Stdout)
	seen := 0
	for n := range stream {
		if n.ForUser != member.ID {
			continue
		}
		switch {
		case quietMode:
			fmt.Println(n.ID)
		case jsonOutput:
			if err := enc.Encode(n); err != nil {
				return err
			}
		default:
			printNotifications([]models.Notification{n})
		}
		seen++
		if count > 0 && seen >= count {
			return nil
		}
	}

	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
