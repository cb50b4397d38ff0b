package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"resume-optimizer/internal/analyses"
	"resume-optimizer/internal/ats"
	"resume-optimizer/internal/keywords"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <resume-file>",
		Short: "Print the parsed resume as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := loadResume(cmd, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), parsed)
		},
	}
}

func newKeywordsCmd() *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "keywords <text-file>",
		Short: "Extract the top keywords from a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if top <= 0 {
				return fmt.Errorf("--top must be positive")
			}
			text, err := readText(args[0])
			if err != nil {
				return err
			}
			for _, kw := range keywords.NewAnalyzer().ExtractKeywords(text, top) {
				fmt.Fprintln(cmd.OutOrStdout(), kw)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 20, "number of keywords to print")
	return cmd
}

type scoreOutput struct {
	KeywordMatch keywords.MatchResult `json:"keyword_match"`
	ATS          ats.Report           `json:"ats"`
	OverallScore float64              `json:"overall_score"`
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <resume-file> <job-description-file>",
		Short: "Score a resume against a job description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := loadResume(cmd, args[0])
			if err != nil {
				return err
			}
			jd, err := readText(args[1])
			if err != nil {
				return err
			}
			match := keywords.NewAnalyzer().MatchScore(parsed.RawText, jd)
			report := ats.Check(parsed)
			return writeJSON(cmd.OutOrStdout(), scoreOutput{
				KeywordMatch: match,
				ATS:          report,
				OverallScore: analyses.OverallScore(match.Score, report.ATSScore),
			})
		},
	}
}

func newATSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ats <resume-file>",
		Short: "Run the ATS compatibility checker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := loadResume(cmd, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), ats.Check(parsed))
		},
	}
}
