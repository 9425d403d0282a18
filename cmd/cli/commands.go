package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"portfolioanalyzer/cmd"
	"portfolioanalyzer/internal/domain"
	"portfolioanalyzer/internal/portfoliofile"
	l1_service "portfolioanalyzer/internal/service/l1"
	l2_service "portfolioanalyzer/internal/service/l2"
	"portfolioanalyzer/internal/util"
	"strings"

	"github.com/spf13/cobra"
)

var errBlockingFindings = errors.New("portfolio has blocking findings")

type engine struct {
	validator l1_service.AllocationValidator
	scorer    l1_service.RiskScorer
	scenarios l2_service.ScenarioImpactService
}

type rootOptions struct {
	catalogOverrides string
	currency         string
	text             bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "portfolio",
		Short:        "Validate portfolios and project economic scenarios without a database",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.catalogOverrides, "catalog-overrides", "", "csv of scenario catalog rows replacing the built-in ones")
	root.PersistentFlags().StringVar(&opts.currency, "currency", "", "currency of the portfolio file, overrides the file's own")
	root.PersistentFlags().BoolVar(&opts.text, "text", false, "print a human readable summary instead of json")

	root.AddCommand(
		newScenariosCommand(opts),
		newValidateCommand(opts),
		newAnalyzeCommand(opts),
	)
	return root
}

func (o rootOptions) engine() (*engine, error) {
	c, err := cmd.LoadCatalog(o.catalogOverrides)
	if err != nil {
		return nil, err
	}
	_, validator, scorer, scenarios, err := cmd.NewEngine(c)
	if err != nil {
		return nil, err
	}
	return &engine{validator: validator, scorer: scorer, scenarios: scenarios}, nil
}

func (o rootOptions) readPortfolio(path string) (*portfoliofile.Portfolio, error) {
	p, err := portfoliofile.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if o.currency != "" {
		p.Currency = strings.ToUpper(o.currency)
	}
	return p, nil
}

func writeJson(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newScenariosCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the scenarios in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			e, err := opts.engine()
			if err != nil {
				return err
			}
			if !opts.text {
				return writeJson(c.OutOrStdout(), e.scenarios.Scenarios())
			}
			for _, s := range e.scenarios.Scenarios() {
				fmt.Fprintf(c.OutOrStdout(), "%-16s %s\n", s.ID, s.Name)
			}
			return nil
		},
	}
}

type validateOutput struct {
	Findings    domain.Findings     `json:"findings"`
	RiskProfile *domain.RiskProfile `json:"riskProfile,omitempty"`
}

// validate runs the validator even when some cells failed to parse, so
// the whole file is reported in one pass
func (e engine) validate(p *portfoliofile.Portfolio) validateOutput {
	findings := p.MergeFindings(e.validator.Validate(l1_service.ValidateInput{
		Assets:     p.Assets,
		TotalValue: p.TotalValue,
		Currency:   p.Currency,
	}))
	out := validateOutput{Findings: findings}
	if !findings.HasBlocking() {
		profile := e.scorer.Score(p.Assets)
		out.RiskProfile = &profile
	}
	return out
}

func printFindings(w io.Writer, findings domain.Findings) {
	for _, f := range findings {
		fmt.Fprintf(w, "[%s] %s: %s\n", f.Severity, f.Kind, f.Message)
	}
}

func newValidateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a csv or json portfolio file and score its risk",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			e, err := opts.engine()
			if err != nil {
				return err
			}
			p, err := opts.readPortfolio(args[0])
			if err != nil {
				return err
			}

			out := e.validate(p)
			if opts.text {
				printFindings(c.OutOrStdout(), out.Findings)
				if out.RiskProfile != nil {
					fmt.Fprintf(c.OutOrStdout(), "overall risk %.1f/10 (concentration %.1f, volatility %.1f, credit %.1f)\n",
						out.RiskProfile.OverallRiskScore,
						out.RiskProfile.ConcentrationRisk,
						out.RiskProfile.VolatilityScore,
						out.RiskProfile.CreditRisk,
					)
				}
			} else if err := writeJson(c.OutOrStdout(), out); err != nil {
				return err
			}

			if out.Findings.HasBlocking() {
				return errBlockingFindings
			}
			return nil
		},
	}
}

func newAnalyzeCommand(opts *rootOptions) *cobra.Command {
	var scenarioID string
	command := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Project one scenario, or every scenario when --scenario is omitted",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			e, err := opts.engine()
			if err != nil {
				return err
			}
			p, err := opts.readPortfolio(args[0])
			if err != nil {
				return err
			}

			validated := e.validate(p)
			if validated.RiskProfile == nil {
				printFindings(c.ErrOrStderr(), validated.Findings)
				return errBlockingFindings
			}

			results := []domain.ScenarioAnalysisResult{}
			if scenarioID != "" {
				result, err := e.scenarios.Analyze(c.Context(), l2_service.AnalyzeInput{
					PortfolioID: p.Name,
					Assets:      p.Assets,
					RiskProfile: validated.RiskProfile,
					ScenarioID:  domain.ScenarioID(scenarioID),
				})
				if err != nil {
					return err
				}
				results = append(results, *result)
			} else {
				results, err = e.scenarios.AnalyzeAll(c.Context(), l2_service.AnalyzeAllInput{
					PortfolioID: p.Name,
					Assets:      p.Assets,
					RiskProfile: validated.RiskProfile,
				})
				if err != nil {
					return err
				}
			}

			if !opts.text {
				return writeJson(c.OutOrStdout(), results)
			}
			for _, r := range results {
				fmt.Fprintf(c.OutOrStdout(), "%-24s %7.2f%%  %s  confidence %.0f\n",
					r.ScenarioName,
					r.TotalImpactPercentage,
					util.FormatMoney(r.TotalImpactDollar, p.Currency),
					r.ConfidenceScore,
				)
				for _, impact := range r.AssetImpacts {
					fmt.Fprintf(c.OutOrStdout(), "  %-8s %7.2f%%  %s\n",
						impact.Symbol,
						impact.ImpactPercentage,
						util.FormatMoney(impact.ImpactDollar, p.Currency),
					)
				}
			}
			return nil
		},
	}
	command.Flags().StringVar(&scenarioID, "scenario", "", "scenario id, see the scenarios command")
	return command
}
