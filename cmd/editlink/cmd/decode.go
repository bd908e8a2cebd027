package cmd

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scenekit/editlink/pkg/editlink/client"
	"github.com/scenekit/editlink/pkg/editlink/protocol"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [HEXFRAME...|-]",
	Short: "Decode captured event frames",
	Long: `Decode one or more hex-encoded event frames and print the events they
carry, using the same dispatcher the editor uses. With "-" (or no arguments),
frames are read one per line from stdin.

Unknown tags are reported but, as on a live connection, never fail.

Examples:
  editlink decode 01000000070000000000803f0000004000004040
  runtime-capture | editlink decode -`,
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := setupLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}
	defer logger.Sync()

	c, err := client.NewClient().
		WithLogger(logger).
		WithSendFunc(func([]byte) error { return nil }).
		Build()
	if err != nil {
		return err
	}
	attachPrinters(c)

	frames, err := collectFrames(args)
	if err != nil {
		return err
	}

	for i, frame := range frames {
		logger.Debug("dispatching frame", zap.Int("index", i), zap.Int("bytes", len(frame)))
		c.OnMessage(frame)
	}

	return nil
}

func attachPrinters(c *client.Client) {
	c.OnEntityPosition(func(ev *protocol.EntityPositionEvent) {
		fmt.Printf("entity_position  entity=%d position=(%g, %g, %g)\n",
			ev.Entity, ev.Position.X, ev.Position.Y, ev.Position.Z)
	})
	c.OnEntitySelected(func(ev *protocol.EntitySelectedEvent) {
		if ev.Entity == protocol.EntityNone {
			fmt.Println("entity_selected  none")
			return
		}
		fmt.Printf("entity_selected  entity=%d\n", ev.Entity)
	})
	c.OnPropertyList(func(ev *protocol.PropertyListEvent) {
		fmt.Printf("property_list    component=0x%08X entries=%d\n",
			ev.ComponentType, len(ev.Entries))
		for _, entry := range ev.Entries {
			fmt.Printf("  %-20s type=%d value=%s\n",
				entry.Name, entry.Type, hex.EncodeToString(entry.Value))
		}
	})
	c.OnLogMessage(func(ev *protocol.LogEvent) {
		fmt.Printf("log_message      [%s] %s\n", ev.Severity, ev.Text)
	})
}

func collectFrames(args []string) ([][]byte, error) {
	var inputs []string
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				inputs = append(inputs, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	} else {
		inputs = args
	}

	frames := make([][]byte, 0, len(inputs))
	for _, in := range inputs {
		frame, err := hex.DecodeString(in)
		if err != nil {
			return nil, fmt.Errorf("bad hex frame %q: %w", in, err)
		}
		frames = append(frames, frame)
	}
	return frames, nil
}
