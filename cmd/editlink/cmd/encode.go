package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scenekit/editlink/pkg/editlink/client"
	"github.com/scenekit/editlink/pkg/editlink/protocol"
)

var (
	encodeRaw bool
	encodeOut string
)

var encodeCmd = &cobra.Command{
	Use:   "encode COMMAND [ARGS...]",
	Short: "Build a framed command message",
	Long: `Build one framed command message and print it as hex (or write the raw
bytes with --raw/--out), using the same emitter the editor uses.

Commands:
  look-at-selected
  toggle-game-mode
  add-entity
  new-universe
  play-pause-animable
  add-component NAME
  pointer-down X Y BUTTON
  pointer-up X Y BUTTON
  pointer-move X Y DX DY FLAGS
  load PATH
  save PATH
  wireframe on|off
  animable-time TIME
  set-position ENTITY X Y Z
  move-camera FORWARD RIGHT SPEED
  set-property COMPONENT PROPERTY HEXVALUE
  get-properties NAME

Examples:
  editlink encode set-position 7 1.0 2.0 3.0
  editlink encode set-property Transform Scale 3f800000
  editlink encode load foo.unv --raw --out frame.bin`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().BoolVar(&encodeRaw, "raw", false, "write raw bytes instead of hex")
	encodeCmd.Flags().StringVarP(&encodeOut, "out", "o", "", "write output to a file instead of stdout")
}

func runEncode(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := setupLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}
	defer logger.Sync()

	var frame []byte
	c, err := client.NewClient().
		WithLogger(logger).
		WithBasePath(cfg.BasePath).
		WithSendFunc(func(b []byte) error {
			frame = append([]byte(nil), b...)
			return nil
		}).
		Build()
	if err != nil {
		return err
	}

	if err := emitCommand(c, args[0], args[1:]); err != nil {
		return err
	}

	var out []byte
	if encodeRaw {
		out = frame
	} else {
		out = []byte(hex.EncodeToString(frame) + "\n")
	}

	if encodeOut != "" {
		return os.WriteFile(encodeOut, out, 0o644)
	}
	_, err = os.Stdout.Write(out)
	return err
}

func emitCommand(c *client.Client, name string, args []string) error {
	switch name {
	case "look-at-selected":
		return noArgs(args, c.LookAtSelected)
	case "toggle-game-mode":
		return noArgs(args, c.ToggleGameMode)
	case "add-entity":
		return noArgs(args, c.AddEntity)
	case "new-universe":
		return noArgs(args, c.NewUniverse)
	case "play-pause-animable":
		return noArgs(args, c.PlayPauseAnimable)

	case "add-component":
		if len(args) != 1 {
			return fmt.Errorf("add-component takes exactly one name")
		}
		c.AddComponent(protocol.HashName(args[0]))
		return nil

	case "pointer-down", "pointer-up":
		v, err := int32Args(args, 3)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if name == "pointer-down" {
			c.PointerDown(v[0], v[1], v[2])
		} else {
			c.PointerUp(v[0], v[1], v[2])
		}
		return nil

	case "pointer-move":
		v, err := int32Args(args, 5)
		if err != nil {
			return fmt.Errorf("pointer-move: %w", err)
		}
		c.PointerMove(v[0], v[1], v[2], v[3], v[4])
		return nil

	case "load":
		if len(args) != 1 {
			return fmt.Errorf("load takes exactly one path")
		}
		c.LoadUniverse(args[0])
		return nil

	case "save":
		if len(args) != 1 {
			return fmt.Errorf("save takes exactly one path")
		}
		c.SaveUniverse(args[0])
		return nil

	case "wireframe":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return fmt.Errorf("wireframe takes on or off")
		}
		c.SetWireframe(args[0] == "on")
		return nil

	case "animable-time":
		v, err := int32Args(args, 1)
		if err != nil {
			return fmt.Errorf("animable-time: %w", err)
		}
		c.SetAnimableTime(v[0])
		return nil

	case "set-position":
		if len(args) != 4 {
			return fmt.Errorf("set-position takes ENTITY X Y Z")
		}
		entity, err := parseInt32(args[0])
		if err != nil {
			return fmt.Errorf("set-position: %w", err)
		}
		pos, err := float32Args(args[1:], 3)
		if err != nil {
			return fmt.Errorf("set-position: %w", err)
		}
		c.SetEntityPosition(entity, protocol.Vec3{X: pos[0], Y: pos[1], Z: pos[2]})
		return nil

	case "move-camera":
		v, err := float32Args(args, 3)
		if err != nil {
			return fmt.Errorf("move-camera: %w", err)
		}
		c.MoveCamera(v[0], v[1], v[2])
		return nil

	case "set-property":
		if len(args) != 3 {
			return fmt.Errorf("set-property takes COMPONENT PROPERTY HEXVALUE")
		}
		value, err := hex.DecodeString(args[2])
		if err != nil {
			return fmt.Errorf("set-property: bad hex value: %w", err)
		}
		c.SetComponentProperty(args[0], args[1], value)
		return nil

	case "get-properties":
		if len(args) != 1 {
			return fmt.Errorf("get-properties takes exactly one name")
		}
		c.RequestProperties(protocol.HashName(args[0]))
		return nil
	}

	return fmt.Errorf("unknown command %q", name)
}

func noArgs(args []string, emit func()) error {
	if len(args) != 0 {
		return fmt.Errorf("command takes no arguments")
	}
	emit()
	return nil
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
}

func int32Args(args []string, n int) ([]int32, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d integer arguments, got %d", n, len(args))
	}
	out := make([]int32, n)
	for i, a := range args {
		v, err := parseInt32(a)
		if err != nil {
			return nil, fmt.Errorf("bad integer %q: %w", a, err)
		}
		out[i] = v
	}
	return out, nil
}

func float32Args(args []string, n int) ([]float32, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d float arguments, got %d", n, len(args))
	}
	out := make([]float32, n)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, fmt.Errorf("bad float %q: %w", a, err)
		}
		out[i] = float32(v)
	}
	return out, nil
}
