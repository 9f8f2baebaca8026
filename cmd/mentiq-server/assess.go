package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mentiq/mentiq/internal/domain/assessment"
)

func assessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score a questionnaire file offline",
		Long:  "Reads a questionnaire in JSON or YAML, scores it with the risk engine and prints the result as JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")
			if path == "" {
				return fmt.Errorf("--file is required")
			}
			return runAssess(cmd.Context(), path, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringP("file", "f", "", "Questionnaire file (.json, .yaml or .yml)")
	return cmd
}

func runAssess(ctx context.Context, path string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := readRequest(path)
	if err != nil {
		return err
	}

	rec, err := assessment.NewService(nil, zerolog.Nop()).Submit(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rec.View())
}

func readRequest(path string) (*assessment.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questionnaire: %w", err)
	}

	var req assessment.Request
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &req)
	default:
		err = json.Unmarshal(data, &req)
	}
	if err != nil {
		return nil, fmt.Errorf("parse questionnaire: %w", err)
	}
	return &req, nil
}
