package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/marcus/notedeck/internal/note"
	"github.com/marcus/notedeck/internal/slot"
)

var (
	addColor     string
	listJSON     bool
	exportFormat string
)

// openStore opens the configured slot and loads the notes from it.
func openStore() (*note.Store, func(), error) {
	s, err := slot.Open(cfg.Notes.SlotConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("open notes slot: %w", err)
	}
	store := note.NewStore(s, note.WithLogger(slog.Default()))
	if err := store.Load(); err != nil {
		// Carrying on with an empty list would overwrite the slot on save.
		_ = s.Close()
		return nil, nil, fmt.Errorf("load notes: %w", err)
	}
	return store, func() { _ = s.Close() }, nil
}

// swatchName returns the palette name for c, or the raw value.
func swatchName(c note.Color) string {
	if i := note.SwatchIndex(c); i >= 0 {
		return note.Palette[i].Name
	}
	return string(c)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes in board order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn, err := openStore()
		if err != nil {
			return err
		}
		defer closeFn()

		out := cmd.OutOrStdout()
		notes := store.Notes()
		if listJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(notes)
		}
		if len(notes) == 0 {
			fmt.Fprintln(out, "No notes yet.")
			return nil
		}
		for i, n := range notes {
			fmt.Fprintf(out, "%d. [%s] %s (%s)  %s\n", i+1, swatchName(n.Color), n.Title, note.FormatUpdated(n.LastUpdated), n.ID)
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add TITLE CONTENT...",
	Short: "Add a note to the front of the board",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, content, err := note.ValidateDraft(args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		color, err := note.ParseColor(addColor)
		if err != nil {
			return err
		}

		store, closeFn, err := openStore()
		if err != nil {
			return err
		}
		defer closeFn()

		created, err := store.Create(note.Note{Title: title, Content: content, Color: color})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", created.ID)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:     "rm ID|INDEX",
	Aliases: []string{"delete"},
	Short:   "Delete a note by id or by its 1-based list position",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn, err := openStore()
		if err != nil {
			return err
		}
		defer closeFn()

		idx := store.IndexOf(args[0])
		if idx < 0 {
			if n, convErr := strconv.Atoi(args[0]); convErr == nil {
				idx = n - 1
			}
		}
		removed, err := store.Delete(idx)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", removed.Title)
		return nil
	},
}

// exportNote is the export shape, stable across formats.
type exportNote struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Content     string    `json:"content" yaml:"content"`
	Color       string    `json:"color" yaml:"color"`
	LastUpdated time.Time `json:"lastUpdated" yaml:"lastUpdated"`
}

// writeExport encodes notes as json or yaml.
func writeExport(w io.Writer, format string, notes []note.Note) error {
	out := make([]exportNote, len(notes))
	for i, n := range notes {
		out[i] = exportNote{
			ID:          n.ID,
			Title:       n.Title,
			Content:     n.Content,
			Color:       string(n.Color),
			LastUpdated: n.LastUpdated.UTC(),
		}
	}

	switch strings.ToLower(format) {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	case "yaml", "yml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(out); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown export format %q (want json or yaml)", format)
	}
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all notes to stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn, err := openStore()
		if err != nil {
			return err
		}
		defer closeFn()
		return writeExport(cmd.OutOrStdout(), exportFormat, store.Notes())
	},
}

func init() {
	rootCmd.AddCommand(listCmd, addCmd, rmCmd, exportCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	addCmd.Flags().StringVarP(&addColor, "color", "c", "", "swatch name or hex (Default, Yellow, Green, Blue, Pink, Purple)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "json or yaml")
}
