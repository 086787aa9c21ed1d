package main

import (
	"ehr-bundle-service/internal/app/config"
	"ehr-bundle-service/internal/app/drivers/logger"
	"ehr-bundle-service/internal/app/services/reports"
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/dto/responses"
	"ehr-bundle-service/internal/pkg/fhir_dto"
	"ehr-bundle-service/internal/pkg/fhir_parser"
	"ehr-bundle-service/internal/pkg/utils"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	exitStructural = 1
	exitViolations = 2
)

const stdinArgument = "-"

// exitCodeError makes Execute report a specific process exit code. A nil err
// means the command already printed everything worth saying.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitCodeError) Unwrap() error {
	return e.err
}

type cliOptions struct {
	logLevel string
	log      *logrus.Logger
}

func newRootCmd() *cobra.Command {
	options := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "bundlecheck",
		Short:         "Parse, validate and summarise clinical bundle documents offline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			internalConfig := config.NewInternalConfig()
			options.log = logger.NewLogrusLogger(internalConfig.App.Env, options.logLevel)
			options.log.SetOutput(cmd.ErrOrStderr())
		},
	}
	rootCmd.PersistentFlags().StringVar(&options.logLevel, "log-level", "warn", "diagnostic log level (debug, info, warn, error)")

	rootCmd.AddCommand(validateCmd(options))
	rootCmd.AddCommand(reportCmd(options))
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func validateCmd(options *cliOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a bundle and print its summary",
		Long:  "Validate a bundle read from file, or from stdin when file is omitted or \"-\". Exits 1 when the document cannot be parsed and 2 when it fails validation.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, diagnostics, err := parseInput(cmd, args, options.log)
			if err != nil {
				return &exitCodeError{code: exitStructural, err: err}
			}

			violations := fhir_parser.ValidateBundle(bundle)
			if violations == nil {
				violations = []fhir_parser.Violation{}
			}
			result := &responses.BundleValidation{
				Valid:          len(violations) == 0,
				Summary:        responses.NewBundleSummary(bundle),
				Violations:     violations,
				SkippedEntries: diagnostics,
			}

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(result); err != nil {
					return &exitCodeError{code: exitStructural, err: err}
				}
			} else {
				printValidation(cmd.OutOrStdout(), result)
			}

			if !result.Valid {
				return &exitCodeError{code: exitViolations}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the validation result as JSON")
	return cmd
}

func reportCmd(options *cliOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Render the visit summary of a bundle",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, _, err := parseInput(cmd, args, options.log)
			if err != nil {
				return &exitCodeError{code: exitStructural, err: err}
			}

			violations := fhir_parser.ValidateBundle(bundle)
			if strict && len(violations) > 0 {
				for _, message := range fhir_parser.ViolationMessages(violations) {
					fmt.Fprintln(cmd.ErrOrStderr(), message)
				}
				return &exitCodeError{code: exitViolations}
			}

			report, err := reports.NewVisitSummaryRenderer().RenderVisitSummary(bundle)
			if err != nil {
				return &exitCodeError{code: exitStructural, err: err}
			}
			_, err = io.WriteString(cmd.OutOrStdout(), report)
			return err
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "refuse to render bundles that fail validation")
	return cmd
}

func tokenCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the bundle API using JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			internalConfig := config.NewInternalConfig()
			if internalConfig.JWT.Secret == "" {
				return &exitCodeError{code: exitStructural, err: errors.New("JWT_SECRET is not set")}
			}

			token, err := utils.GenerateJWT(subject, internalConfig.JWT.Secret, internalConfig.JWT.ExpTimeInHour)
			if err != nil {
				return &exitCodeError{code: exitStructural, err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject, usually the clinician or system id")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Tag: %s\n", Tag)
		},
	}
}

func parseInput(cmd *cobra.Command, args []string, log *logrus.Logger) (*fhir_dto.Bundle, []fhir_parser.Diagnostic, error) {
	raw, err := readInput(cmd, args)
	if err != nil {
		return nil, nil, err
	}

	recorder := fhir_parser.NewRecorder()
	parser := fhir_parser.NewParser(fhir_parser.MultiSink(fhir_parser.NewLogrusSink(log), recorder))
	bundle, err := parser.Parse(raw)
	if err != nil {
		return nil, nil, err
	}

	diagnostics := recorder.Diagnostics()
	if diagnostics == nil {
		diagnostics = []fhir_parser.Diagnostic{}
	}
	return bundle, diagnostics, nil
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == stdinArgument {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}

func printValidation(w io.Writer, result *responses.BundleValidation) {
	summary := result.Summary
	fmt.Fprintf(w, "Bundle:    %s\n", summary.ID)
	fmt.Fprintf(w, "Type:      %s\n", summary.Type)
	fmt.Fprintf(w, "Timestamp: %s\n", summary.Timestamp)
	fmt.Fprintf(w, "Entries:   %d\n", summary.EntryCount)
	fmt.Fprintf(w, "Signed:    %t\n", summary.Signed)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Resource", "Count"})
	table.SetAutoFormatHeaders(false)
	for _, kind := range constvars.ResourceKinds {
		if count, ok := summary.ResourceCounts[kind.String()]; ok {
			table.Append([]string{kind.String(), strconv.Itoa(count)})
		}
	}
	table.Render()

	for _, diagnostic := range result.SkippedEntries {
		fmt.Fprintf(w, "Skipped entry %d (%s): %s\n", diagnostic.EntryIndex, diagnostic.Code, diagnostic.Message)
	}

	if result.Valid {
		fmt.Fprintln(w, "Result:    valid")
		return
	}
	fmt.Fprintf(w, "Result:    invalid (%d violations)\n", len(result.Violations))
	for _, violation := range result.Violations {
		fmt.Fprintf(w, "  - %s: %s\n", violation.Rule, violation.Message)
	}
}
