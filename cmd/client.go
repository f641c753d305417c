package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Vovarama1992/human_translator/internal/domain"
	"github.com/Vovarama1992/human_translator/internal/speech"
)

var (
	onlineStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2E7D32"))
	offlineStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C62828"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

func newHealthCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the API is online",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}

			h := domain.NewHealthService(client, g.notifier()).Check(cmd.Context())
			out := cmd.OutOrStdout()
			if !h.Healthy {
				fmt.Fprintf(out, "%s %s\n", offlineStyle.Render("API Offline"), dimStyle.Render(h.Status))
				return fmt.Errorf("api is %s", h.Status)
			}
			fmt.Fprintf(out, "%s %s\n", onlineStyle.Render("API Online"), dimStyle.Render("v"+h.Version))
			return nil
		},
	}
}

func newLanguagesCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}

			langs, err := domain.NewLanguageService(client, nil, g.notifier()).Load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			options := langs.Options()
			for _, l := range options {
				fmt.Fprintf(out, "%-6s %s\n", l.Code, l.Name)
			}
			fmt.Fprintln(out, dimStyle.Render(humanize.Comma(int64(len(options)))+" languages available"))
			return nil
		},
	}
}

func newTranslateCmd(g *globals) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "translate TEXT...",
		Short: "Translate one text, or several in a single batch",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}
			notifier := g.notifier()

			// Validation against the list is best effort; the API checks codes too.
			langs, err := domain.NewLanguageService(client, nil, notifier).Load(cmd.Context())
			if err != nil {
				langs = nil
			}

			svc := domain.NewTranslationService(client, notifier)
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				tr, err := svc.Translate(cmd.Context(), langs, domain.TranslateInput{Text: args[0], Source: from, Target: to})
				if err != nil {
					return err
				}
				info := tr.Source + " → " + tr.Target
				if tr.Confidence > 0 {
					info += fmt.Sprintf(" (%.0f%%)", tr.Confidence*100)
				}
				fmt.Fprintln(out, tr.Text)
				fmt.Fprintln(out, dimStyle.Render(info))
				return nil
			}

			results, err := svc.TranslateBatch(cmd.Context(), langs, args, from, to)
			if err != nil {
				return err
			}
			failed := 0
			for _, r := range results {
				if !r.OK() {
					failed++
					fmt.Fprintf(out, "%s %q: %s\n", offlineStyle.Render("✗"), r.Original, r.Error)
					continue
				}
				fmt.Fprintln(out, r.Text)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d texts failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "source language code (empty or auto to detect)")
	cmd.Flags().StringVar(&to, "to", "", "target language code")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newSpeakCmd(g *globals) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "speak TEXT",
		Short: "Convert text to speech and print the audio URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}

			sp, err := speech.NewService(client, client, g.notifier()).Synthesize(cmd.Context(), args[0], lang)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sp.URL)
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "language of the text")
	_ = cmd.MarkFlagRequired("lang")
	return cmd
}

func newTranscribeCmd(g *globals) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "transcribe FILE",
		Short: "Convert an audio file to text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read audio: %w", err)
			}
			if len(data) == 0 {
				return errors.New("audio file is empty")
			}

			audio := speech.Audio{Filename: filepath.Base(args[0]), Data: data, Language: lang}
			tr, err := speech.NewService(client, client, g.notifier()).Transcribe(cmd.Context(), audio)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tr.Text)
			fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%s, %s", tr.Language, humanize.Bytes(uint64(audio.Size())))))
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "language hint (empty to detect)")
	return cmd
}
