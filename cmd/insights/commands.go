package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"interview-insights-go/internal/config"
	"interview-insights-go/internal/dataset"
	"interview-insights-go/internal/export"
	"interview-insights-go/internal/logger"
	"interview-insights-go/internal/pipeline"
	"interview-insights-go/internal/processor"
	"interview-insights-go/internal/transcription"
	"interview-insights-go/internal/types"
)

type app struct {
	log  *logger.Logger
	proc *processor.Processor
}

func newApp(logOut io.Writer) (*app, error) {
	_ = godotenv.Load()
	log := logger.NewWithOutput(logOut)
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	src := transcription.New(transcription.Options{
		BaseURL: cfg.Transcription.URL,
		Mock:    cfg.Transcription.Mock,
	}, log.Component("transcription"))
	pl := pipeline.New(pipeline.OptionsFromConfig(cfg), nil, log.Component("pipeline"))
	return &app{
		log:  log,
		proc: processor.New(src, pl, nil, cfg.Transcription.Timeout(), log.Component("processor")),
	}, nil
}

func newRootCmd() *cobra.Command {
	var a *app
	root := &cobra.Command{
		Use:          "insights",
		Short:        "Turn interview transcripts into classified insight records",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a, err = newApp(cmd.ErrOrStderr())
			return err
		},
	}
	root.AddCommand(newRunCmd(&a), newBatchCmd(&a))
	return root
}

func newRunCmd(a **app) *cobra.Command {
	var (
		audioURL string
		filename string
		format   string
		out      string
	)
	cmd := &cobra.Command{
		Use:   "run [words.json]",
		Short: "Process one interview from a word file or a recording URL",
		Example: `  insights run words.json --filename norte_lecheria_2024_ana-7_acme.mp3 --format csv
  insights run --audio-url https://cdn.example.com/norte_lecheria_2024_ana-7_acme.mp3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			req := processor.Request{AudioURL: audioURL, Filename: filename}
			if len(args) == 1 {
				if req.Words, err = readInput(cmd, args[0]); err != nil {
					return err
				}
				if req.Filename == "" && args[0] != "-" {
					req.Filename = filepath.Base(args[0])
				}
			}
			if len(req.Words) == 0 && req.AudioURL == "" {
				return fmt.Errorf("provide a words file or --audio-url")
			}

			res, err := (*a).proc.Process(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeOutput(cmd, out, func(w io.Writer) error {
				// JSON carries the summary and action card too.
				if f == export.FormatJSON {
					enc := json.NewEncoder(w)
					enc.SetIndent("", "  ")
					return enc.Encode(res)
				}
				return export.Write(w, f, res.Records)
			})
		},
	}
	cmd.Flags().StringVar(&audioURL, "audio-url", "", "recording to transcribe when no words file is given")
	cmd.Flags().StringVar(&filename, "filename", "", "recording filename used for metadata")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newBatchCmd(a **app) *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "batch <manifest.xlsx>",
		Short: "Process every recording listed in an xlsx manifest into one export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			entries, err := dataset.Load(args[0])
			if err != nil {
				return err
			}
			log := (*a).log.Component("batch").WithField("manifest", args[0])
			log.WithField("entries", len(entries)).Info("batch started")

			var all []types.InsightRecord
			failed := 0
			for _, e := range entries {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				res, err := (*a).proc.Process(cmd.Context(), processor.Request{AudioURL: e.AudioURL, Filename: e.Filename})
				if err != nil {
					failed++
					log.WithError(err).WithField("row", e.Row).Warn("interview failed")
					continue
				}
				all = append(all, renumber(res.Records, len(all))...)
			}
			log.WithField("records", len(all)).WithField("failed", failed).Info("batch finished")

			if err := writeOutput(cmd, out, func(w io.Writer) error { return export.Write(w, f, all) }); err != nil {
				return err
			}
			if failed == len(entries) && failed > 0 {
				return fmt.Errorf("all %d interviews failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: json, csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

// renumber makes indexes continuous across interviews in one export.
func renumber(records []types.InsightRecord, offset int) []types.InsightRecord {
	for i := range records {
		records[i].Index = offset + i + 1
	}
	return records
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return nil, fmt.Errorf("%s is empty", name)
	}
	return b, nil
}

func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
